package session

import (
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie is the backend's access-token cookie name.
const AccessTokenCookie = "access_token"

// TokenExpiringSoon reports whether the access token in the forwarded
// Cookie header expires within leeway. The claim is read without verifying
// the signature; verification is the backend's job, this only decides
// whether a proactive refresh is worth it. Missing or unreadable tokens
// report true so the caller refreshes and lets the backend arbitrate.
func TokenExpiringSoon(cookieHeader string, leeway time.Duration, now time.Time) bool {
	token := cookieValue(cookieHeader, AccessTokenCookie)
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.Add(leeway).After(exp.Time)
}

func cookieValue(cookieHeader, name string) string {
	if cookieHeader == "" {
		return ""
	}
	header := http.Header{}
	header.Add("Cookie", cookieHeader)
	req := http.Request{Header: header}
	if ck, err := req.Cookie(name); err == nil {
		return ck.Value
	}
	return ""
}
