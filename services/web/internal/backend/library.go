package backend

import (
	"context"
	"net/http"

	"bookvoyage/pkg/domain"
	"bookvoyage/pkg/paging"
	"bookvoyage/services/web/internal/fallback"
)

// ListUserBooks returns the current user's reading library.
func (c *Client) ListUserBooks(ctx context.Context, cookie string, cursor *string, size int) paging.Page[domain.LibraryEntry] {
	return fetchWithFallback(ctx, "user_books",
		func(ctx context.Context) (paging.Page[domain.LibraryEntry], error) {
			var page paging.Page[domain.LibraryEntry]
			err := c.DoJSON(ctx, http.MethodGet, withQuery("/api/user-books", cursorQuery(cursor, size)), RequestOptions{Cookie: cookie}, &page)
			return page, err
		},
		func() paging.Page[domain.LibraryEntry] { return fallback.LibraryEntries(cursor, size) },
	)
}

// GetUserBookDetail fetches one library entry. Unlike the list reads this
// propagates failure: the caller must catch it to render a not-found state.
func (c *Client) GetUserBookDetail(ctx context.Context, cookie, id string) (domain.LibraryEntry, error) {
	var entry domain.LibraryEntry
	if err := c.DoJSON(ctx, http.MethodGet, "/api/user-books/"+id, RequestOptions{Cookie: cookie}, &entry); err != nil {
		return domain.LibraryEntry{}, err
	}
	return entry, nil
}

// SaveUserBookInput carries library entry fields for create and update.
type SaveUserBookInput struct {
	BookID   string               `json:"bookId"`
	Status   domain.ReadingStatus `json:"status"`
	Progress int                  `json:"progress"`
	Rating   int                  `json:"rating,omitempty"`
	Note     string               `json:"note,omitempty"`
}

// SaveUserBook adds a book to the library.
func (c *Client) SaveUserBook(ctx context.Context, cookie string, input SaveUserBookInput) (domain.LibraryEntry, error) {
	var entry domain.LibraryEntry
	if err := c.DoJSON(ctx, http.MethodPost, "/api/user-books", RequestOptions{Cookie: cookie, Body: input}, &entry); err != nil {
		return domain.LibraryEntry{}, err
	}
	return entry, nil
}

// UpdateUserBook updates an existing library entry.
func (c *Client) UpdateUserBook(ctx context.Context, cookie, id string, input SaveUserBookInput) (domain.LibraryEntry, error) {
	var entry domain.LibraryEntry
	if err := c.DoJSON(ctx, http.MethodPut, "/api/user-books/"+id, RequestOptions{Cookie: cookie, Body: input}, &entry); err != nil {
		return domain.LibraryEntry{}, err
	}
	return entry, nil
}

// DeleteUserBook removes a library entry.
func (c *Client) DeleteUserBook(ctx context.Context, cookie, id string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/api/user-books/"+id, RequestOptions{Cookie: cookie}, nil)
}
