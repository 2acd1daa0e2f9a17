package paging

import "strconv"

// DefaultLimit is the page size used when a caller passes limit <= 0.
const DefaultLimit = 6

// Page is one window of a cursor-paginated list. NextCursor is nil when no
// further items exist; a non-nil cursor is opaque to consumers and must be
// passed back unmodified to fetch the next page.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"nextCursor"`
}

// Empty returns a page with no items and no next cursor.
func Empty[T any]() Page[T] {
	return Page[T]{Items: []T{}}
}

// Paginate windows a flat in-memory list with an offset-encoded cursor.
// This encoding exists only for bundled fallback datasets; live backend
// cursors are opaque tokens and are never parsed by this package.
//
// An absent or unparsable cursor means offset 0. Walking pages from a nil
// cursor until NextCursor is nil visits every item exactly once, in order.
func Paginate[T any](items []T, cursor *string, limit int) Page[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := 0
	if cursor != nil {
		if n, err := strconv.Atoi(*cursor); err == nil && n > 0 {
			offset = n
		}
	}
	if offset >= len(items) {
		return Empty[T]()
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	page := Page[T]{Items: items[offset:end]}
	if end < len(items) {
		next := strconv.Itoa(end)
		page.NextCursor = &next
	}
	return page
}

// Cursor builds a cursor pointer from a raw token. Convenience for callers
// that hold the token as a plain string.
func Cursor(token string) *string {
	if token == "" {
		return nil
	}
	return &token
}
