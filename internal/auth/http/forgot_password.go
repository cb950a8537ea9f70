package http

import (
	"errors"
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

type ForgotPasswordHandler struct {
	ResetService *service.ResetService
}

// ServeHTTP godoc
//
//	@Summary		Request a password-reset code
//	@Description	Emails a one-time code to a registered address. Unknown emails return
//	@Description	404; for known ones the response is identical whether or not the mail
//	@Description	was actually delivered.
//	@Tags			Reset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.ForgotPasswordRequest	true	"email"
//	@Success		200		{object}	authapi.MessageResponse			"message"
//	@Failure		400		{object}	authapi.APIError				"error, error_description"
//	@Failure		404		{object}	authapi.APIError				"no account with this email"
//	@Failure		500		{object}	authapi.APIError				"error, error_description"
//	@Router			/v1/auth/forgot-password [post].
func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.ResetService.RequestReset(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			authapi.ErrEmailNotFound.WriteError(w)
		default:
			log.Error("reset request failed", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{Message: "reset code sent"})
}
