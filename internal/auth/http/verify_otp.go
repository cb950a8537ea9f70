package http

import (
	"errors"
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

type VerifyOtpHandler struct {
	ResetService *service.ResetService
}

// ServeHTTP godoc
//
//	@Summary		Verify a password-reset code
//	@Description	Checks the submitted code against the pending one. On success the
//	@Description	account enters a bounded window during which the password may be reset.
//	@Tags			Reset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.VerifyOtpRequest	true	"email and otp"
//	@Success		200		{object}	authapi.MessageResponse		"message"
//	@Failure		400		{object}	authapi.APIError			"wrong or expired code"
//	@Failure		404		{object}	authapi.APIError			"no account with this email"
//	@Failure		500		{object}	authapi.APIError			"error, error_description"
//	@Router			/v1/auth/verify-otp [post].
func (h *VerifyOtpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.VerifyOtpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.ResetService.VerifyOtp(ctx, req.Email, req.Otp); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			authapi.ErrEmailNotFound.WriteError(w)
		case errors.Is(err, service.ErrOtpMismatch):
			authapi.ErrOtpMismatch.WriteError(w)
		case errors.Is(err, service.ErrOtpExpired):
			authapi.ErrOtpExpired.WriteError(w)
		default:
			log.Error("otp verification failed", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{Message: "code verified"})
}
