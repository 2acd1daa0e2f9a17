package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bookvoyage/services/web/internal/session"
	"bookvoyage/services/web/internal/tracking"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.loginLimiter, "too many login attempts") {
		return
	}
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	resp, err := s.backend.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	defer resp.Body.Close()

	// Whatever the outcome, the cached session for this browser is stale.
	s.dropSession(r)
	relayResponse(w, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.refreshLimiter, "too many refresh attempts") {
		return
	}
	resp, err := s.backend.RefreshSession(r.Context(), browserCookie(r))
	if err != nil {
		writeBackendError(w, err)
		return
	}
	defer resp.Body.Close()
	relayResponse(w, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	registry, err := session.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session registry not configured")
		return
	}
	id := tracking.EnsureIdentity(w, r)
	manager := registry.Get(id.SessionID)
	manager.Logout(r.Context(), browserCookie(r))
	registry.Drop(id.SessionID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type sessionResponse struct {
	User    any  `json:"user"`
	Loading bool `json:"loading"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	registry, err := session.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session registry not configured")
		return
	}
	id := tracking.EnsureIdentity(w, r)
	manager := registry.Get(id.SessionID)
	snap := manager.CurrentOrRefresh(r.Context(), browserCookie(r), s.refreshLeeway)
	if snap.User == nil {
		writeJSON(w, http.StatusUnauthorized, sessionResponse{Loading: snap.Loading})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: snap.User, Loading: snap.Loading})
}

// handleOAuthStart hands the browser to the backend's Google entry point;
// the whole consent dance happens against the API origin.
func (s *Server) handleOAuthStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	http.Redirect(w, r, s.backend.BaseURL()+"/oauth2/authorization/google", http.StatusFound)
}

// handleOAuthRedirect lands the browser back from the provider. A failed
// handshake carries an error query parameter and goes back to the sign-in
// page; a clean one goes home with fresh cookies already set upstream.
func (s *Server) handleOAuthRedirect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	s.dropSession(r)
	if reason := r.URL.Query().Get("error"); reason != "" {
		http.Redirect(w, r, "/auth?error="+url.QueryEscape(reason), http.StatusFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// dropSession evicts this browser's cached session manager so the next
// read resolves against the backend.
func (s *Server) dropSession(r *http.Request) {
	registry, err := session.FromContext(r.Context())
	if err != nil {
		return
	}
	if ck, err := r.Cookie(tracking.SessionCookie); err == nil && ck.Value != "" {
		registry.Drop(ck.Value)
	}
}

// relayResponse copies the backend response to the browser untouched:
// status, Set-Cookie headers, content type and body.
func relayResponse(w http.ResponseWriter, resp *http.Response) {
	for _, sc := range resp.Header.Values("Set-Cookie") {
		w.Header().Add("Set-Cookie", sc)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}
