// README: Pulse handlers: post and nearby feed.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pulse/internal/http/middleware"
	"pulse/internal/modules/pulse"
	"pulse/internal/types"
)

type PulseHandler struct {
	pulse *pulse.Service
}

func NewPulseHandler(svc *pulse.Service) *PulseHandler {
	return &PulseHandler{pulse: svc}
}

type createPulseReq struct {
	Body      string  `json:"body"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *PulseHandler) Create(c *gin.Context) {
	var req createPulseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	uid := types.ID(middleware.CallerUID(c))
	p, err := h.pulse.Create(c.Request.Context(), pulse.CreateCommand{
		AuthorID: uid,
		Body:     req.Body,
		Location: types.Location{
			Address:   req.Address,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
	})
	if err != nil {
		writePulseError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

func (h *PulseHandler) ListNearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radiusKm, _ := strconv.ParseFloat(c.DefaultQuery("radius_km", "0"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	pulses, err := h.pulse.ListNearby(c.Request.Context(), lat, lng, radiusKm, limit)
	if err != nil {
		writePulseError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pulses": pulses})
}
