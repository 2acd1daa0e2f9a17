// Package server is the HTTP edge the browser talks to. It forwards the
// browser's cookies to the backend API, relays refreshed session cookies
// back, and serves bundled sample data when the backend cannot answer a
// read. Form-level failures come back as inline JSON errors; page-level
// reads never 5xx when a fallback covers them.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"bookvoyage/internal/ratelimit"
	"bookvoyage/internal/util"
	"bookvoyage/pkg/paging"
	"bookvoyage/services/web/internal/backend"
	"bookvoyage/services/web/internal/session"
	"bookvoyage/services/web/internal/tracking"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	Backend                    *backend.Client
	Sessions                   *session.Registry
	Collector                  *tracking.Collector
	Redis                      *redis.Client
	TrustedProxies             *util.TrustedProxies
	WebOrigins                 []string
	TokenRefreshLeeway         time.Duration
	LoginRateLimitPerMinute    int
	RefreshRateLimitPerMinute  int
	TrackingRateLimitPerMinute int
}

// Server exposes the browser-facing HTTP endpoints.
type Server struct {
	backend         *backend.Client
	sessions        *session.Registry
	collector       *tracking.Collector
	trusted         *util.TrustedProxies
	webOrigins      []string
	refreshLeeway   time.Duration
	mux             *http.ServeMux
	loginLimiter    *ratelimit.FixedWindowLimiter
	refreshLimiter  *ratelimit.FixedWindowLimiter
	trackingLimiter *ratelimit.FixedWindowLimiter
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	loginLimit := cfg.LoginRateLimitPerMinute
	if loginLimit <= 0 {
		loginLimit = 10
	}
	refreshLimit := cfg.RefreshRateLimitPerMinute
	if refreshLimit <= 0 {
		refreshLimit = 30
	}
	trackingLimit := cfg.TrackingRateLimitPerMinute
	if trackingLimit <= 0 {
		trackingLimit = 120
	}
	rateWindow := time.Minute
	newLimiter := func(name string, limit int) (*ratelimit.FixedWindowLimiter, error) {
		prefix := "bookvoyage:web:ratelimit:" + name
		limiter, err := ratelimit.NewFixedWindowLimiter(cfg.Redis, prefix, limit, rateWindow)
		if err != nil {
			return nil, fmt.Errorf("init %s limiter: %w", name, err)
		}
		return limiter, nil
	}
	loginLimiter, err := newLimiter("login", loginLimit)
	if err != nil {
		return nil, err
	}
	refreshLimiter, err := newLimiter("refresh", refreshLimit)
	if err != nil {
		return nil, err
	}
	trackingLimiter, err := newLimiter("tracking", trackingLimit)
	if err != nil {
		return nil, err
	}
	leeway := cfg.TokenRefreshLeeway
	if leeway <= 0 {
		leeway = 30 * time.Second
	}
	s := &Server{
		backend:         cfg.Backend,
		sessions:        cfg.Sessions,
		collector:       cfg.Collector,
		trusted:         cfg.TrustedProxies,
		webOrigins:      cfg.WebOrigins,
		refreshLeeway:   leeway,
		mux:             http.NewServeMux(),
		loginLimiter:    loginLimiter,
		refreshLimiter:  refreshLimiter,
		trackingLimiter: trackingLimiter,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler with the middleware chain applied.
func (s *Server) Router() http.Handler {
	var h http.Handler = s.mux
	h = s.withSession(h)
	h = s.withCookieRelay(h)
	h = util.WithRequestLog("web", s.trusted, h)
	h = util.WithRequestID(h)
	h = util.WithCORS(s.webOrigins, h)
	h = util.WithSecurityHeaders(h)
	return h
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// auth
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/refresh", s.handleRefresh)
	s.mux.HandleFunc("/api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("/api/auth/me", s.handleMe)
	s.mux.HandleFunc("/oauth2/authorization/google", s.handleOAuthStart)
	s.mux.HandleFunc("/oauth2/redirect", s.handleOAuthRedirect)

	// resources
	s.mux.HandleFunc("/api/books", s.handleBooks)
	s.mux.HandleFunc("/api/books/", s.handleBookByID)
	s.mux.HandleFunc("/api/reviews", s.handleReviews)
	s.mux.HandleFunc("/api/reviews/", s.handleReviewSubtree)
	s.mux.HandleFunc("/api/user-books", s.handleUserBooks)
	s.mux.HandleFunc("/api/user-books/", s.handleUserBookByID)
	s.mux.HandleFunc("/api/profiles/", s.handleProfileSubtree)
	s.mux.HandleFunc("/api/search", s.handleSearch)
	s.mux.HandleFunc("/api/recommendations/books", s.handleRecommendedBooks)
	s.mux.HandleFunc("/api/ai/user-analysis", s.handleUserAnalysis)
	s.mux.HandleFunc("/api/ai/community-trend", s.handleCommunityTrend)
	s.mux.HandleFunc("/api/home", s.handleHome)

	// telemetry
	s.mux.HandleFunc("/api/tracking/events", s.handleTrackingEvents)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withSession makes the session registry reachable from every handler.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(session.WithRegistry(r.Context(), s.sessions)))
	})
}

// withCookieRelay forwards refreshed backend cookies to the browser. The
// relay has to land in the header map before the first WriteHeader, hence
// the recording writer.
func (s *Server) withCookieRelay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, relay := backend.WithCookieRelay(r.Context())
		next.ServeHTTP(&relayWriter{ResponseWriter: w, relay: relay}, r.WithContext(ctx))
	})
}

type relayWriter struct {
	http.ResponseWriter
	relay *backend.CookieRelay
	wrote bool
}

func (w *relayWriter) WriteHeader(statusCode int) {
	if !w.wrote {
		w.wrote = true
		w.relay.Apply(w.Header())
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *relayWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) allowRate(w http.ResponseWriter, r *http.Request, limiter *ratelimit.FixedWindowLimiter, msg string) bool {
	key := r.URL.Path + "|" + s.trusted.ClientIP(r)
	if limiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, msg)
	return false
}

// browserCookie is the inbound Cookie header, forwarded verbatim to the
// backend on every call.
func browserCookie(r *http.Request) string {
	return r.Header.Get("Cookie")
}

func cursorParam(r *http.Request) *string {
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		return paging.Cursor(raw)
	}
	return nil
}

func intParam(r *http.Request, name, fallback string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		raw = fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func sizeParam(r *http.Request) int {
	return intParam(r, "size", strconv.Itoa(paging.DefaultLimit))
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeBackendError maps write-through mutation failures. Read paths never
// reach here, their fallbacks absorb the error.
func writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.Status, apiErr.Message)
		return
	}
	if errors.Is(err, backend.ErrUnexpectedContentType) {
		writeError(w, http.StatusBadGateway, "backend returned an unexpected response")
		return
	}
	writeError(w, http.StatusBadGateway, "backend unavailable")
}
