package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoRegistry is returned when session state is read from a context that
// was never given a registry. This is a programmer error in the wiring, not
// a runtime condition to recover from, so callers should fail loudly.
var ErrNoRegistry = errors.New("session: no registry in context")

const defaultTTL = 30 * time.Minute

type registryContextKey struct{}

type entry struct {
	manager *Manager
	expires time.Time
}

// Registry owns the Managers for all live browser sessions, keyed by the
// browser session id. It is the only component that creates or evicts
// session state.
type Registry struct {
	client Backend
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry constructs a registry evicting idle sessions after ttl.
func NewRegistry(client Backend, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Registry{
		client:  client,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Get returns the Manager for a browser session, creating it in the
// Unknown state on first sight. Each access extends the session's TTL.
func (r *Registry) Get(sessionID string) *Manager {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(now)
	if e, ok := r.entries[sessionID]; ok {
		e.expires = now.Add(r.ttl)
		return e.manager
	}
	e := &entry{manager: NewManager(r.client), expires: now.Add(r.ttl)}
	r.entries[sessionID] = e
	return e.manager
}

// Drop removes a session, invalidating any in-flight refresh.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sessionID]; ok {
		e.manager.Invalidate()
		delete(r.entries, sessionID)
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) sweepLocked(now time.Time) {
	for id, e := range r.entries {
		if now.After(e.expires) {
			e.manager.Invalidate()
			delete(r.entries, id)
		}
	}
}

// WithRegistry stores the registry in the context for downstream consumers.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryContextKey{}, r)
}

// FromContext returns the registry, or ErrNoRegistry when the wiring never
// installed one.
func FromContext(ctx context.Context) (*Registry, error) {
	r, ok := ctx.Value(registryContextKey{}).(*Registry)
	if !ok || r == nil {
		return nil, ErrNoRegistry
	}
	return r, nil
}
