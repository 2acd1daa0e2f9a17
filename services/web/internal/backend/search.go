package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"bookvoyage/pkg/domain"
	"bookvoyage/pkg/paging"
	"bookvoyage/services/web/internal/fallback"
)

// SearchBooks queries the external book search. The live endpoint uses
// Google Books style startIndex/size windowing rather than cursors; the
// result is normalized into a cursor page whose next cursor encodes the next
// start index for this endpoint family only.
func (c *Client) SearchBooks(ctx context.Context, cookie, query string, startIndex, size int) paging.Page[domain.SearchResult] {
	if size <= 0 {
		size = paging.DefaultLimit
	}
	return fetchWithFallback(ctx, "search",
		func(ctx context.Context) (paging.Page[domain.SearchResult], error) {
			q := url.Values{}
			q.Set("q", query)
			q.Set("startIndex", strconv.Itoa(startIndex))
			q.Set("size", strconv.Itoa(size))
			var resp struct {
				Items      []domain.SearchResult `json:"items"`
				TotalItems int                   `json:"totalItems"`
			}
			if err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/search", q), RequestOptions{Cookie: cookie}, &resp); err != nil {
				return paging.Page[domain.SearchResult]{}, err
			}
			page := paging.Page[domain.SearchResult]{Items: resp.Items}
			if startIndex+len(resp.Items) < resp.TotalItems {
				page.NextCursor = paging.Cursor(strconv.Itoa(startIndex + len(resp.Items)))
			}
			return page, nil
		},
		func() paging.Page[domain.SearchResult] {
			return fallback.SearchBooks(query, paging.Cursor(strconv.Itoa(startIndex)), size)
		},
	)
}
