package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
)

const refreshPath = "/api/auth/refresh"

// ErrUnexpectedContentType signals a response whose body is not JSON where
// JSON was expected. A 200 carrying HTML is typically an auth redirect the
// transport did not surface as a status code.
var ErrUnexpectedContentType = errors.New("unexpected content type")

// APIError represents a backend error response with an HTTP status.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Client calls the Bookvoyage backend API over HTTP. Server-side code has
// no implicit browser cookie jar, so every call forwards the inbound
// request's Cookie header explicitly.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a backend client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithHTTP constructs a backend client over a caller-supplied
// http.Client (tests, custom transports).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOptions shape one backend call.
type RequestOptions struct {
	// Body is JSON-marshaled into the request body when non-nil.
	Body any
	// Header entries are merged over the default JSON content type.
	Header http.Header
	// Cookie is the forwarded browser Cookie header.
	Cookie string

	noRetry bool
}

// Do issues the call with forwarded credentials. On 401 it performs exactly
// one token-refresh call; when refresh succeeds the original request is
// reissued once with retry disabled, and the refresh's Set-Cookie values are
// attached to the retried response so the caller can relay them to the
// browser. When refresh fails the original 401 response is returned
// unchanged. Network errors propagate to the caller.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || opts.noRetry || path == refreshPath {
		return resp, nil
	}

	setCookies, err := c.refresh(ctx, opts.Cookie)
	if err != nil {
		slog.DebugContext(ctx, "token refresh failed", "path", path, "err", err)
		return resp, nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	retryOpts := opts
	retryOpts.noRetry = true
	retryOpts.Cookie = mergeCookieHeader(opts.Cookie, setCookies)
	retryResp, err := c.Do(ctx, method, path, retryOpts)
	if err != nil {
		return nil, err
	}
	for _, sc := range setCookies {
		retryResp.Header.Add("Set-Cookie", sc)
	}
	if relay := relayFromContext(ctx); relay != nil {
		relay.add(setCookies)
	}
	return retryResp, nil
}

// DoJSON issues the call and decodes a JSON response into out. Non-2xx
// statuses become *APIError; non-JSON bodies become ErrUnexpectedContentType.
func (c *Client) DoJSON(ctx context.Context, method, path string, opts RequestOptions, out any) error {
	resp, err := c.Do(ctx, method, path, opts)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg, Code: strings.TrimSpace(errResp.Code)}
	}
	if out == nil {
		return nil
	}
	if !isJSONResponse(resp) {
		return fmt.Errorf("%w: %q on %s %s", ErrUnexpectedContentType, resp.Header.Get("Content-Type"), method, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, opts RequestOptions) (*http.Request, error) {
	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range opts.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if opts.Cookie != "" {
		req.Header.Set("Cookie", opts.Cookie)
	}
	return req, nil
}

// refresh exchanges the current cookies for fresh ones. It returns the
// Set-Cookie header values issued by the backend.
func (c *Client) refresh(ctx context.Context, cookie string) ([]string, error) {
	resp, err := c.Do(ctx, http.MethodPost, refreshPath, RequestOptions{Cookie: cookie, noRetry: true})
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: "refresh rejected"}
	}
	return resp.Header.Values("Set-Cookie"), nil
}

func isJSONResponse(resp *http.Response) bool {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// mergeCookieHeader overlays refreshed cookies onto the forwarded Cookie
// header so the retried request authenticates with the new tokens.
func mergeCookieHeader(cookie string, setCookies []string) string {
	merged := make([]*http.Cookie, 0, 4)
	if cookie != "" {
		header := http.Header{}
		header.Add("Cookie", cookie)
		req := http.Request{Header: header}
		merged = req.Cookies()
	}
	for _, raw := range setCookies {
		// http.ParseSetCookie requires Go 1.23; this is the pre-1.23 equivalent.
		cookies := (&http.Response{Header: http.Header{"Set-Cookie": {raw}}}).Cookies()
		if len(cookies) == 0 {
			continue
		}
		parsed := cookies[0]
		replaced := false
		for i, existing := range merged {
			if existing.Name == parsed.Name {
				merged[i] = &http.Cookie{Name: parsed.Name, Value: parsed.Value}
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, &http.Cookie{Name: parsed.Name, Value: parsed.Value})
		}
	}
	pairs := make([]string, 0, len(merged))
	for _, ck := range merged {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}
