package http

import (
	"errors"
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

type ResetPasswordHandler struct {
	ResetService *service.ResetService
}

// ServeHTTP godoc
//
//	@Summary		Set a new password after code verification
//	@Description	Completes the reset flow. Only valid inside the window opened by
//	@Description	verify-otp. On success every session of the account is revoked and
//	@Description	all devices must log in again.
//	@Tags			Reset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.ResetPasswordRequest	true	"email and newPassword"
//	@Success		200		{object}	authapi.MessageResponse			"message"
//	@Failure		400		{object}	authapi.APIError				"window expired or password reused"
//	@Failure		404		{object}	authapi.APIError				"no account with this email"
//	@Failure		500		{object}	authapi.APIError				"error, error_description"
//	@Router			/v1/auth/reset-password [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.ResetService.ResetPassword(ctx, req.Email, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			authapi.ErrEmailNotFound.WriteError(w)
		case errors.Is(err, service.ErrResetWindowExpired):
			authapi.ErrResetWindowExpired.WriteError(w)
		case errors.Is(err, service.ErrDuplicatePassword):
			authapi.ErrDuplicatePassword.WriteError(w)
		default:
			log.Error("password reset failed", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("password reset completed")

	clearRefreshCookie(w)
	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{Message: "password updated, please log in"})
}
