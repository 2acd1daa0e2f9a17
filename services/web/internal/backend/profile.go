package backend

import (
	"context"
	"net/http"

	"bookvoyage/pkg/domain"
	"bookvoyage/pkg/paging"
	"bookvoyage/services/web/internal/fallback"
)

// GetProfile fetches a user profile, substituting the bundled sample
// profile when the backend is unreachable.
func (c *Client) GetProfile(ctx context.Context, cookie, id string) (domain.Profile, error) {
	var profile domain.Profile
	err := c.DoJSON(ctx, http.MethodGet, "/api/profiles/"+id, RequestOptions{Cookie: cookie}, &profile)
	if err != nil {
		if sample, ok := fallback.Profile(id); ok {
			return sample, nil
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

// ListFollowers returns the followers of a user.
func (c *Client) ListFollowers(ctx context.Context, cookie, userID string, cursor *string, limit int) paging.Page[domain.Profile] {
	return fetchWithFallback(ctx, "followers",
		func(ctx context.Context) (paging.Page[domain.Profile], error) {
			var page paging.Page[domain.Profile]
			err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/profiles/"+userID+"/followers", cursorQuery(cursor, limit)), RequestOptions{Cookie: cookie}, &page)
			return page, err
		},
		func() paging.Page[domain.Profile] { return fallback.Followers(userID, cursor, limit) },
	)
}

// ListFollowing returns the users a user follows.
func (c *Client) ListFollowing(ctx context.Context, cookie, userID string, cursor *string, limit int) paging.Page[domain.Profile] {
	return fetchWithFallback(ctx, "following",
		func(ctx context.Context) (paging.Page[domain.Profile], error) {
			var page paging.Page[domain.Profile]
			err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/profiles/"+userID+"/following", cursorQuery(cursor, limit)), RequestOptions{Cookie: cookie}, &page)
			return page, err
		},
		func() paging.Page[domain.Profile] { return fallback.Following(userID, cursor, limit) },
	)
}

// Follow starts following a user. Write-through, no fallback.
func (c *Client) Follow(ctx context.Context, cookie, userID string) error {
	return c.DoJSON(ctx, http.MethodPost, "/api/profiles/"+userID+"/follow", RequestOptions{Cookie: cookie}, nil)
}

// Unfollow stops following a user.
func (c *Client) Unfollow(ctx context.Context, cookie, userID string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/api/profiles/"+userID+"/follow", RequestOptions{Cookie: cookie}, nil)
}
