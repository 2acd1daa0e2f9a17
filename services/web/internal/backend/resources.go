package backend

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"bookvoyage/pkg/paging"
)

// fetchWithFallback tries the live call and substitutes the bundled static
// page when the call fails or comes back empty. Every fallback-covered read
// goes through here so the branch behaves the same for all resources.
func fetchWithFallback[T any](ctx context.Context, name string, live func(context.Context) (paging.Page[T], error), fall func() paging.Page[T]) paging.Page[T] {
	page, err := live(ctx)
	if err != nil {
		slog.DebugContext(ctx, "live fetch failed, serving fallback", "resource", name, "err", err)
		return fall()
	}
	if len(page.Items) == 0 && page.NextCursor == nil {
		return fall()
	}
	return page
}

// cursorQuery renders the numeric cursor/size parameter family used by most
// cursor-paginated list endpoints. The cursor token is passed through as an
// opaque string, never parsed.
func cursorQuery(cursor *string, size int) url.Values {
	q := url.Values{}
	if cursor != nil && *cursor != "" {
		q.Set("cursor", *cursor)
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return q
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
