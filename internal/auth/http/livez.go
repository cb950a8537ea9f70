package http

import (
	"net/http"
	"time"

	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 whenever the process is up, with uptime and version.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authapi.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authapi.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
