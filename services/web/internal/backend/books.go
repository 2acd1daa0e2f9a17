package backend

import (
	"context"
	"net/http"

	"bookvoyage/pkg/domain"
	"bookvoyage/pkg/paging"
	"bookvoyage/services/web/internal/fallback"
)

// ListBooks returns a page of the catalog, preferring the live backend and
// falling back to the bundled sample catalog.
func (c *Client) ListBooks(ctx context.Context, cookie string, cursor *string, size int) paging.Page[domain.Book] {
	return fetchWithFallback(ctx, "books",
		func(ctx context.Context) (paging.Page[domain.Book], error) {
			var page paging.Page[domain.Book]
			err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/books", cursorQuery(cursor, size)), RequestOptions{Cookie: cookie}, &page)
			return page, err
		},
		func() paging.Page[domain.Book] { return fallback.Books(cursor, size) },
	)
}

// GetBook fetches one book. Failures propagate so the caller can render a
// not-found state.
func (c *Client) GetBook(ctx context.Context, cookie, id string) (domain.Book, error) {
	var book domain.Book
	if err := c.DoJSON(ctx, http.MethodGet, "/api/books/"+id, RequestOptions{Cookie: cookie}, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}
