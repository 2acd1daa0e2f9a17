// Package session holds the gateway's cached view of the signed-in user,
// independent of the backend's own cookie session. State moves from Unknown
// to Authenticated or Anonymous and is only ever mutated through the
// Manager. A stale in-flight refresh can never overwrite state that a later
// logout or re-initialization already settled.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bookvoyage/pkg/domain"
)

// Backend is the slice of the API client the session layer needs.
type Backend interface {
	Me(ctx context.Context, cookie string) (domain.AuthUser, error)
	Logout(ctx context.Context, cookie string) error
}

// Snapshot is a point-in-time read of the session state. User is nil both
// while Unknown and when Anonymous; Resolved distinguishes the two.
type Snapshot struct {
	User     *domain.AuthUser
	Loading  bool
	Resolved bool
}

// Manager owns one browser session's auth state.
type Manager struct {
	client Backend

	mu       sync.Mutex
	user     *domain.AuthUser
	resolved bool
	loading  bool
	epoch    uint64
}

// NewManager starts in the Unknown state; the owner is expected to kick a
// background Refresh.
func NewManager(client Backend) *Manager {
	return &Manager{client: client}
}

// NewResolvedManager starts already resolved, as when a server-side cookie
// check supplied an initial user. A nil initial user means Anonymous. This
// avoids an Unknown flash on first read.
func NewResolvedManager(client Backend, initial *domain.AuthUser) *Manager {
	m := &Manager{client: client, resolved: true}
	if initial != nil {
		u := *initial
		m.user = &u
	}
	return m
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{User: m.user, Loading: m.loading, Resolved: m.resolved}
}

// Refresh re-queries the backend profile endpoint. Success resolves to
// Authenticated; any failure, including non-2xx and non-JSON bodies,
// resolves to Anonymous. The loading flag also suppresses re-entrant
// refresh triggers: a call that finds one in flight returns immediately
// with the current state.
func (m *Manager) Refresh(ctx context.Context, cookie string) Snapshot {
	m.mu.Lock()
	if m.loading {
		snap := Snapshot{User: m.user, Loading: true, Resolved: m.resolved}
		m.mu.Unlock()
		return snap
	}
	m.loading = true
	epoch := m.epoch
	m.mu.Unlock()

	user, err := m.client.Me(ctx, cookie)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		// A logout or re-initialization settled this session while the
		// fetch was in flight. The stale result must not resurrect it.
		slog.DebugContext(ctx, "discarding stale session refresh")
		return Snapshot{User: m.user, Loading: m.loading, Resolved: m.resolved}
	}
	m.loading = false
	m.resolved = true
	if err != nil {
		m.user = nil
	} else {
		m.user = &user
	}
	return Snapshot{User: m.user, Resolved: true}
}

// CurrentOrRefresh serves the cached state when it is resolved and the
// access token is not about to expire; otherwise it refreshes first. The
// expiry peek is unverified, so at worst an extra refresh happens.
func (m *Manager) CurrentOrRefresh(ctx context.Context, cookie string, leeway time.Duration) Snapshot {
	m.mu.Lock()
	resolved := m.resolved
	m.mu.Unlock()
	if resolved && !TokenExpiringSoon(cookie, leeway, time.Now()) {
		return m.Snapshot()
	}
	return m.Refresh(ctx, cookie)
}

// Logout clears the session to Anonymous. The backend logout call is
// best-effort; the local state is cleared regardless of its outcome.
func (m *Manager) Logout(ctx context.Context, cookie string) {
	if err := m.client.Logout(ctx, cookie); err != nil {
		slog.DebugContext(ctx, "backend logout failed", "err", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.user = nil
	m.resolved = true
	m.loading = false
}

// Invalidate resets the session to Unknown and invalidates any in-flight
// refresh, as when the browser navigates and re-initializes.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.user = nil
	m.resolved = false
	m.loading = false
}
