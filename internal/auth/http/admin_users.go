package http

import (
	"net/http"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

type AdminUsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		List all users
//	@Description	Returns every registered user, newest first. Admin only: the gate
//	@Description	verifies the token and RequireAdmin enforces the admin claim.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		authapi.UserInfo	"id, email, isAdmin"
//	@Failure		401	{object}	authapi.APIError	"unusable token"
//	@Failure		403	{object}	authapi.APIError	"not an admin"
//	@Failure		500	{object}	authapi.APIError	"error, error_description"
//	@Router			/v1/admin/users [get].
func (h *AdminUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("user listing failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	out := make([]authapi.UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, authapi.UserInfo{
			ID:      u.ID,
			Email:   u.Email,
			IsAdmin: u.IsAdmin,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
