package utils

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names and paths for the browser session. The refresh token
// cookie is scoped to the refresh-token endpoint namespace so the
// browser never sends it to unrelated routes.
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"

	accessCookiePath  = "/"
	refreshCookiePath = "/api/users/refresh-token"
)

// SessionCookies translates an issued token pair into HTTP response
// cookies and clears them on logout. Both operations build cookies
// from the same attribute set: a clear whose path/sameSite/secure
// attributes drift from the original set silently fails to remove the
// cookie in common browsers.
type SessionCookies struct {
	// Secure marks the cookies Secure, set in production only.
	Secure bool
	// AccessMaxAge / RefreshMaxAge mirror the token lifetimes.
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

// NewSessionCookies builds the cookie manager with the reference
// lifetimes (matching the token TTLs).
func NewSessionCookies(secure bool, accessTTLMin, refreshTTLDays int) SessionCookies {
	return SessionCookies{
		Secure:        secure,
		AccessMaxAge:  time.Duration(accessTTLMin) * time.Minute,
		RefreshMaxAge: time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

// cookie builds one session cookie with the shared security
// attributes. maxAge <= 0 produces an expired cookie, which is how
// Clear removes it.
func (s SessionCookies) cookie(name, value, path string, maxAge time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.Secure,
	}
	if maxAge > 0 {
		ck.MaxAge = int(maxAge / time.Second)
	} else {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
	}
	return ck
}

// Attach sets the accessToken and refreshToken cookies on the
// response.
func (s SessionCookies) Attach(c echo.Context, pair TokenPair) {
	c.SetCookie(s.cookie(AccessCookieName, pair.AccessToken, accessCookiePath, s.AccessMaxAge))
	c.SetCookie(s.cookie(RefreshCookieName, pair.RefreshToken, refreshCookiePath, s.RefreshMaxAge))
}

// Clear expires both session cookies using the identical attribute
// set used by Attach.
func (s SessionCookies) Clear(c echo.Context) {
	c.SetCookie(s.cookie(AccessCookieName, "", accessCookiePath, 0))
	c.SetCookie(s.cookie(RefreshCookieName, "", refreshCookiePath, 0))
}
