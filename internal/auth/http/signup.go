package http

import (
	"errors"
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

type SignupHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates a user account and logs it in immediately. The access token
//	@Description	is returned in the body; the refresh token is set as an HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.SignupRequest	true	"email and password"
//	@Success		201		{object}	authapi.SessionResponse	"user, accessToken"
//	@Failure		400		{object}	authapi.APIError		"error, error_description"
//	@Failure		409		{object}	authapi.APIError		"email already registered"
//	@Failure		500		{object}	authapi.APIError		"error, error_description"
//	@Router			/v1/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, pair, err := h.SessionService.Signup(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			authapi.ErrEmailTaken.WriteError(w)
		default:
			log.Error("signup failed", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("user signed up", "user_id", u.ID)

	setRefreshCookie(w, pair.RefreshToken, h.SessionService.RefreshTTL)
	httpx.WriteJSON(w, http.StatusCreated, authapi.SessionResponse{
		User: authapi.UserInfo{
			ID:      u.ID,
			Email:   u.Email,
			IsAdmin: u.IsAdmin,
		},
		AccessToken: pair.AccessToken,
	})
}
