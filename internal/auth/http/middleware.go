package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// AuthMiddleware is the revocation gate in front of every protected route.
// It verifies the bearer token, checks it against the session store, and
// silently refreshes expired tokens whose session still holds a live
// refresh token. A refreshed token is surfaced on the X-New-Access-Token
// response header; the request proceeds either way with the caller's
// identity in the context.
func AuthMiddleware(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := bearerToken(r)
			if raw == "" {
				authapi.ErrMissingCredential.WriteError(w)
				return
			}

			id, newToken, err := sessions.Authorize(ctx, raw)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrInvalidToken):
					authapi.ErrInvalidSignature.WriteError(w)
				case errors.Is(err, service.ErrRevoked):
					authapi.ErrRevokedToken.WriteError(w)
				case errors.Is(err, service.ErrExpiredRefresh):
					authapi.ErrExpiredRefreshToken.WriteError(w)
				default:
					log.Error("authorization gate failed", "err", err)
					authapi.ErrServerError.WriteError(w)
				}
				return
			}

			if newToken != "" {
				w.Header().Set(authapi.NewAccessTokenHeader, newToken)
			}

			ctx = httpx.ContextWithIdentity(ctx, httpx.Identity{
				UserID:  id.UserID,
				IsAdmin: id.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin denies non-admin identities. Must sit inside AuthMiddleware.
func RequireAdmin() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := httpx.IdentityFromContext(r.Context())
			if !ok {
				authapi.ErrMissingCredential.WriteError(w)
				return
			}
			if !id.IsAdmin {
				authapi.ErrForbidden.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
