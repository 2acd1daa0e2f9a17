package tracking

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestEnsureIdentityMintsCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	id := EnsureIdentity(rec, req)
	if _, err := uuid.Parse(id.SessionID); err != nil {
		t.Fatalf("session id is not a uuid: %q", id.SessionID)
	}
	if _, err := uuid.Parse(id.DeviceID); err != nil {
		t.Fatalf("device id is not a uuid: %q", id.DeviceID)
	}

	cookies := rec.Result().Cookies()
	var session, device *http.Cookie
	for _, c := range cookies {
		switch c.Name {
		case SessionCookie:
			session = c
		case DeviceCookie:
			device = c
		}
	}
	if session == nil || device == nil {
		t.Fatalf("expected both identity cookies to be set, got %d cookies", len(cookies))
	}
	if session.MaxAge != 0 {
		t.Fatalf("session cookie must not persist, MaxAge=%d", session.MaxAge)
	}
	if device.MaxAge <= 0 {
		t.Fatalf("device cookie must persist, MaxAge=%d", device.MaxAge)
	}
	if !session.HttpOnly || !device.HttpOnly {
		t.Fatal("identity cookies must be http-only")
	}
}

func TestEnsureIdentityReusesExistingCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "11111111-1111-1111-1111-111111111111"})
	req.AddCookie(&http.Cookie{Name: DeviceCookie, Value: "22222222-2222-2222-2222-222222222222"})

	id := EnsureIdentity(rec, req)
	if id.SessionID != "11111111-1111-1111-1111-111111111111" {
		t.Fatalf("existing session id not reused: %q", id.SessionID)
	}
	if id.DeviceID != "22222222-2222-2222-2222-222222222222" {
		t.Fatalf("existing device id not reused: %q", id.DeviceID)
	}
	if got := len(rec.Result().Cookies()); got != 0 {
		t.Fatalf("no cookies should be re-set when both exist, got %d", got)
	}
}

func TestEnsureIdentityMintsOnlyTheMissingCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DeviceCookie, Value: "22222222-2222-2222-2222-222222222222"})

	id := EnsureIdentity(rec, req)
	if id.DeviceID != "22222222-2222-2222-2222-222222222222" {
		t.Fatalf("existing device id not reused: %q", id.DeviceID)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("expected only a fresh session cookie, got %v", cookies)
	}
}
