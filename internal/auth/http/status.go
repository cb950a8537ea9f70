package http

import (
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
)

type AuthStatusHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Check authentication status
//	@Description	Non-mutating probe for UI state. Reports whether the presented token
//	@Description	is currently usable. Never refreshes, never writes, and never returns
//	@Description	an error status for a missing or unusable token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authapi.AuthStatusResponse	"isLoggedIn, userId, isAdmin"
//	@Router			/v1/auth/check-auth-status [get].
func (h *AuthStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r)
	if raw == "" {
		httpx.WriteJSON(w, http.StatusOK, authapi.AuthStatusResponse{IsLoggedIn: false})
		return
	}

	id, ok := h.SessionService.Check(r.Context(), raw)
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, authapi.AuthStatusResponse{IsLoggedIn: false})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.AuthStatusResponse{
		IsLoggedIn: true,
		UserID:     id.UserID,
		IsAdmin:    id.IsAdmin,
	})
}
