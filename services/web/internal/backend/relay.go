package backend

import (
	"context"
	"net/http"
	"sync"
)

type cookieRelayKey struct{}

// CookieRelay collects Set-Cookie values produced by mid-request token
// refreshes. Server-side calls have no cookie jar, so without the relay a
// refreshed token would be lost and the browser would trip the same 401 on
// its next request.
type CookieRelay struct {
	mu     sync.Mutex
	values []string
}

// WithCookieRelay attaches a fresh relay to the context. Every backend call
// made with the returned context records refreshed cookies into it.
func WithCookieRelay(ctx context.Context) (context.Context, *CookieRelay) {
	relay := &CookieRelay{}
	return context.WithValue(ctx, cookieRelayKey{}, relay), relay
}

func relayFromContext(ctx context.Context) *CookieRelay {
	relay, _ := ctx.Value(cookieRelayKey{}).(*CookieRelay)
	return relay
}

func (cr *CookieRelay) add(values []string) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.values = append(cr.values, values...)
}

// Apply copies the collected Set-Cookie values onto h. Call it before the
// response header is written.
func (cr *CookieRelay) Apply(h http.Header) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	for _, v := range cr.values {
		h.Add("Set-Cookie", v)
	}
}
