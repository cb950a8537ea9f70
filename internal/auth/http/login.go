package http

import (
	"errors"
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Log in with email and password
//	@Description	Verifies credentials and issues a fresh access/refresh pair. Every
//	@Description	login creates its own session; other devices are unaffected.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.LoginRequest	true	"email and password"
//	@Success		200		{object}	authapi.SessionResponse	"user, accessToken"
//	@Failure		400		{object}	authapi.APIError		"error, error_description"
//	@Failure		401		{object}	authapi.APIError		"invalid email or password"
//	@Failure		500		{object}	authapi.APIError		"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, pair, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authapi.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("user logged in", "user_id", u.ID)

	setRefreshCookie(w, pair.RefreshToken, h.SessionService.RefreshTTL)
	httpx.WriteJSON(w, http.StatusOK, authapi.SessionResponse{
		User: authapi.UserInfo{
			ID:      u.ID,
			Email:   u.Email,
			IsAdmin: u.IsAdmin,
		},
		AccessToken: pair.AccessToken,
	})
}
