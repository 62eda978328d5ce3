package session

import (
	"net/http"
	"time"
)

const DefaultCookieName = "portal_session"

// HeaderName carries the session id for clients that do not keep cookies.
const HeaderName = "X-Session-Id"

type CookieConfig struct {
	Name   string
	Secure bool
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// IdFromRequest returns the session id sent by the client, preferring the cookie.
func IdFromRequest(r *http.Request, cfg CookieConfig) string {
	if cookie, err := r.Cookie(cfg.name()); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get(HeaderName)
}

func SetCookie(w http.ResponseWriter, cfg CookieConfig, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    s.Id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.ExpiresAt,
	})
}

func ClearCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
