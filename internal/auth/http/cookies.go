package http

import (
	"net/http"
	"time"

	"github.com/lunamart/lunamart/pkg/authapi"
)

// setRefreshCookie delivers the refresh token as an HttpOnly cookie so
// browser scripts can never read it. It is scoped to the auth prefix; no
// other route ever receives it.
func setRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     authapi.RefreshCookieName,
		Value:    token,
		Path:     "/v1/auth",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authapi.RefreshCookieName,
		Value:    "",
		Path:     "/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
