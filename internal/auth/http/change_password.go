package http

import (
	"errors"
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

type ChangePasswordHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Change password while logged in
//	@Description	Re-verifies the current password before replacing it. Unlike the
//	@Description	reset flow, existing sessions stay valid.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.ChangePasswordRequest	true	"currentPassword and newPassword"
//	@Success		200		{object}	authapi.MessageResponse			"message"
//	@Failure		400		{object}	authapi.APIError				"password reused or malformed request"
//	@Failure		401		{object}	authapi.APIError				"wrong current password or unusable token"
//	@Failure		500		{object}	authapi.APIError				"error, error_description"
//	@Router			/v1/auth/change-password [post].
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		authapi.ErrMissingCredential.WriteError(w)
		return
	}

	var req authapi.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.SessionService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authapi.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrDuplicatePassword):
			authapi.ErrDuplicatePassword.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			authapi.ErrMissingCredential.WriteError(w)
		default:
			log.Error("password change failed", "user_id", userID, "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("password changed", "user_id", userID)

	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{Message: "password updated"})
}
