// README: Profile handlers: read profile, set display name.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/http/middleware"
	"pulse/internal/modules/profile"
	"pulse/internal/types"
)

type ProfileHandler struct {
	profile *profile.Service
}

func NewProfileHandler(svc *profile.Service) *ProfileHandler {
	return &ProfileHandler{profile: svc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	uid := types.ID(middleware.CallerUID(c))
	p, err := h.profile.Get(c.Request.Context(), uid)
	if err != nil {
		writeProfileError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"uid":      p.UID,
		"username": p.Username,
		"location": gin.H{
			"address":   p.Address,
			"latitude":  p.Latitude,
			"longitude": p.Longitude,
		},
		"has_location": p.HasLocation(),
	})
}

type setUsernameReq struct {
	Username string `json:"username"`
}

func (h *ProfileHandler) SetUsername(c *gin.Context) {
	var req setUsernameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	uid := types.ID(middleware.CallerUID(c))
	if err := h.profile.SetUsername(c.Request.Context(), uid, req.Username); err != nil {
		writeProfileError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"username": req.Username})
}
