package backend

import (
	"context"
	"io"
	"net/http"

	"bookvoyage/pkg/domain"
)

// Me returns the profile of the user the forwarded cookies authenticate.
func (c *Client) Me(ctx context.Context, cookie string) (domain.AuthUser, error) {
	var user domain.AuthUser
	if err := c.DoJSON(ctx, http.MethodGet, "/api/auth/me", RequestOptions{Cookie: cookie}, &user); err != nil {
		return domain.AuthUser{}, err
	}
	return user, nil
}

// Login exchanges credentials for a session. The raw response is returned
// so the HTTP layer can relay status, body and Set-Cookie headers to the
// browser untouched.
func (c *Client) Login(ctx context.Context, email, password string) (*http.Response, error) {
	payload := map[string]string{"email": email, "password": password}
	return c.Do(ctx, http.MethodPost, "/api/auth/login", RequestOptions{Body: payload, noRetry: true})
}

// RefreshSession performs an explicit token refresh on behalf of the
// browser, relaying the backend response.
func (c *Client) RefreshSession(ctx context.Context, cookie string) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, "/api/auth/refresh", RequestOptions{Cookie: cookie, noRetry: true})
}

// Logout invalidates the backend session. Best-effort: the caller proceeds
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context, cookie string) error {
	resp, err := c.Do(ctx, http.MethodPost, "/api/auth/logout", RequestOptions{Cookie: cookie, noRetry: true})
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}
