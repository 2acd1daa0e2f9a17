package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestWithRequestIDMintsAndPropagates(t *testing.T) {
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromRequest(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	echoed := rec.Header().Get(RequestIDHeader)
	if echoed == "" || echoed != seen {
		t.Fatalf("response header %q and context id %q must match", echoed, seen)
	}
	if _, err := uuid.Parse(echoed); err != nil {
		t.Fatalf("minted id is not a uuid: %q", echoed)
	}
}

func TestWithRequestIDKeepsInboundID(t *testing.T) {
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromRequest(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-from-upstream")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "req-from-upstream" {
		t.Fatalf("inbound id must survive, got %q", seen)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "req-from-upstream" {
		t.Fatalf("inbound id must be echoed, got %q", got)
	}
}

func TestRequestIDFromContextZeroValues(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("nil context expected empty id, got %q", got)
	}
	if got := RequestIDFromRequest(nil); got != "" {
		t.Fatalf("nil request expected empty id, got %q", got)
	}
}
