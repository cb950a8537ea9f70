package http

import (
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

type LogoutHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Log out the current session
//	@Description	Deletes the session backing the presented access token and clears
//	@Description	the refresh cookie. Idempotent: an unknown or already-revoked token
//	@Description	still yields 200. Other sessions of the same user stay live.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authapi.MessageResponse	"message"
//	@Failure		500	{object}	authapi.APIError		"error, error_description"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// No gate in front of this route: logging out with a dead token must
	// succeed, not bounce with 401.
	if raw := bearerToken(r); raw != "" {
		if err := h.SessionService.Logout(ctx, raw); err != nil {
			log.Error("logout failed", "err", err)
			authapi.ErrServerError.WriteError(w)
			return
		}
	}

	clearRefreshCookie(w)
	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{Message: "logged out"})
}
