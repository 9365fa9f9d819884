// README: Almanac handler: the home-screen snapshot for a coordinate.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pulse/internal/almanac"
	"pulse/internal/http/middleware"
	"pulse/internal/modules/profile"
	"pulse/internal/types"
)

// HomeLocator resolves a user's stored home location (satisfied by
// *profile.Service).
type HomeLocator interface {
	Get(ctx context.Context, uid types.ID) (*profile.Profile, error)
}

type AlmanacHandler struct {
	almanac *almanac.Service
	homes   HomeLocator
}

func NewAlmanacHandler(svc *almanac.Service, homes HomeLocator) *AlmanacHandler {
	return &AlmanacHandler{almanac: svc, homes: homes}
}

// Snapshot serves the snapshot for explicit lat/lng query params, falling back
// to the caller's stored home location when they are absent.
func (h *AlmanacHandler) Snapshot(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		uid := types.ID(middleware.CallerUID(c))
		p, err := h.homes.Get(c.Request.Context(), uid)
		if err != nil || !p.HasLocation() {
			writeError(c, http.StatusBadRequest, "lat and lng are required until a home location is set")
			return
		}
		lat, lng = p.Latitude, p.Longitude
	}
	snap, err := h.almanac.Snapshot(c.Request.Context(), lat, lng)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, snap)
}
