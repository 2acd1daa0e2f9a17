package tracking

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookie scopes an id to one browser session.
	SessionCookie = "bv_session_id"
	// DeviceCookie scopes an id to the device, surviving browser restarts.
	DeviceCookie = "bv_device_id"

	deviceCookieMaxAge = int(365 * 24 * time.Hour / time.Second)
)

// EnsureIdentity reads the session and device ids from the request cookies,
// minting and setting any that are missing. Ids are created lazily on the
// first tracked event and never explicitly destroyed; the session id lives
// until the browser closes, the device id for a year.
func EnsureIdentity(w http.ResponseWriter, r *http.Request) Identity {
	id := Identity{}
	if ck, err := r.Cookie(SessionCookie); err == nil && ck.Value != "" {
		id.SessionID = ck.Value
	} else {
		id.SessionID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id.SessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if ck, err := r.Cookie(DeviceCookie); err == nil && ck.Value != "" {
		id.DeviceID = ck.Value
	} else {
		id.DeviceID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     DeviceCookie,
			Value:    id.DeviceID,
			Path:     "/",
			MaxAge:   deviceCookieMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id
}
