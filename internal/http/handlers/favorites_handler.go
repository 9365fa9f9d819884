// README: Favorites handlers: list, rename, delete (delete needs confirm=true).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/http/middleware"
	"pulse/internal/modules/favorites"
	"pulse/internal/types"
)

type FavoritesHandler struct {
	favorites *favorites.Service
}

func NewFavoritesHandler(svc *favorites.Service) *FavoritesHandler {
	return &FavoritesHandler{favorites: svc}
}

func (h *FavoritesHandler) List(c *gin.Context) {
	uid := types.ID(middleware.CallerUID(c))
	locs, err := h.favorites.Load(c.Request.Context(), uid)
	if err != nil {
		writeFavoritesError(c, err)
		return
	}
	if locs == nil {
		locs = []favorites.SavedLocation{}
	}
	writeJSON(c, http.StatusOK, gin.H{"favorites": locs})
}

type renameFavoriteReq struct {
	Label    string `json:"label"`
	NewLabel string `json:"new_label"`
}

func (h *FavoritesHandler) Rename(c *gin.Context) {
	var req renameFavoriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	uid := types.ID(middleware.CallerUID(c))
	if err := h.favorites.Rename(c.Request.Context(), uid, req.Label, req.NewLabel); err != nil {
		writeFavoritesError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"label": req.NewLabel})
}

// Delete requires the confirm=true query parameter; the client shows the
// confirmation dialog and only then sends the confirmed request.
func (h *FavoritesHandler) Delete(c *gin.Context) {
	label := c.Query("label")
	if label == "" {
		writeError(c, http.StatusBadRequest, "missing label")
		return
	}
	if c.Query("confirm") != "true" {
		writeError(c, http.StatusConflict, "confirmation required")
		return
	}
	uid := types.ID(middleware.CallerUID(c))
	if err := h.favorites.Delete(c.Request.Context(), uid, label); err != nil {
		writeFavoritesError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": label})
}
