// README: Location picker handlers; one session per authenticated user.
package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/http/middleware"
	"pulse/internal/modules/picker"
	"pulse/internal/types"
)

// LocationSaver persists the picker's final selection (satisfied by
// *profile.Service).
type LocationSaver interface {
	SetLocation(ctx context.Context, uid types.ID, loc types.Location) error
}

type PickerHandler struct {
	picker *picker.Manager
	saver  LocationSaver
}

func NewPickerHandler(m *picker.Manager, saver LocationSaver) *PickerHandler {
	return &PickerHandler{picker: m, saver: saver}
}

func (h *PickerHandler) Open(c *gin.Context) {
	uid := types.ID(middleware.CallerUID(c))
	s := h.picker.Open(c.Request.Context(), uid, func(ctx context.Context, loc types.Location) {
		if err := h.saver.SetLocation(ctx, uid, loc); err != nil {
			log.Printf("picker: persist location for %s: %v", uid, err)
		}
	})
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) State(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

type queryReq struct {
	Query string `json:"query"`
}

func (h *PickerHandler) Query(c *gin.Context) {
	var req queryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.SetQuery(req.Query); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) Map(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.ChooseOnMap(); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) Back(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.BackToSearch(); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) Region(c *gin.Context) {
	var req picker.Region
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.SetRegion(req); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) Confirm(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		return
	}
	loc, err := s.ConfirmMap(c.Request.Context())
	if err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"location": loc})
}

type selectReq struct {
	PlaceID string `json:"place_id"`
}

func (h *PickerHandler) Select(c *gin.Context) {
	var req selectReq
	if err := c.ShouldBindJSON(&req); err != nil || req.PlaceID == "" {
		writeError(c, http.StatusBadRequest, "missing place_id")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	loc, err := s.SelectPrediction(c.Request.Context(), req.PlaceID)
	if err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"location": loc})
}

type labelReq struct {
	Label string `json:"label"`
}

func (h *PickerHandler) SelectFavorite(c *gin.Context) {
	var req labelReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Label == "" {
		writeError(c, http.StatusBadRequest, "missing label")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	loc, err := s.SelectFavorite(c.Request.Context(), req.Label)
	if err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"location": loc})
}

// preciseReq carries the device's own permission outcome and coordinates; the
// server never sees more than this single fix.
type preciseReq struct {
	Granted   bool    `json:"granted"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type requestPosition struct {
	granted bool
	pt      types.Point
}

func (r requestPosition) RequestPermission(context.Context) (bool, error) { return r.granted, nil }
func (r requestPosition) Current(context.Context) (types.Point, error)   { return r.pt, nil }

func (h *PickerHandler) Precise(c *gin.Context) {
	var req preciseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	src := requestPosition{granted: req.Granted, pt: types.Point{Lat: req.Latitude, Lng: req.Longitude}}
	loc, err := s.UsePreciseLocation(c.Request.Context(), src)
	if err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"location": loc})
}

type beginSaveReq struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

func (h *PickerHandler) SaveBegin(c *gin.Context) {
	var req beginSaveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.PlaceID == "" {
		writeError(c, http.StatusBadRequest, "missing place_id")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.BeginSave(req.PlaceID, req.Description); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) SaveSubmit(c *gin.Context) {
	var req labelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.SubmitSave(c.Request.Context(), req.Label); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) EditBegin(c *gin.Context) {
	var req labelReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Label == "" {
		writeError(c, http.StatusBadRequest, "missing label")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.BeginEdit(req.Label); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

type editSubmitReq struct {
	NewLabel string `json:"new_label"`
}

func (h *PickerHandler) EditSubmit(c *gin.Context) {
	var req editSubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.SubmitEdit(c.Request.Context(), req.NewLabel); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) ModalCancel(c *gin.Context) {
	s, err := h.session(c)
	if err != nil {
		return
	}
	s.CancelModal()
	writeJSON(c, http.StatusOK, stateResponse(s))
}

type deleteFavoriteReq struct {
	Label     string `json:"label"`
	Confirmed bool   `json:"confirmed"`
}

func (h *PickerHandler) FavoriteDelete(c *gin.Context) {
	var req deleteFavoriteReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Label == "" {
		writeError(c, http.StatusBadRequest, "missing label")
		return
	}
	s, err := h.session(c)
	if err != nil {
		return
	}
	if err := s.DeleteFavorite(c.Request.Context(), req.Label, req.Confirmed); err != nil {
		writePickerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stateResponse(s))
}

func (h *PickerHandler) Close(c *gin.Context) {
	uid := types.ID(middleware.CallerUID(c))
	h.picker.Close(uid)
	writeJSON(c, http.StatusOK, gin.H{"open": false})
}

func (h *PickerHandler) session(c *gin.Context) (*picker.Session, error) {
	uid := types.ID(middleware.CallerUID(c))
	s, err := h.picker.Get(uid)
	if err != nil {
		writePickerError(c, err)
		return nil, err
	}
	return s, nil
}

func stateResponse(s *picker.Session) gin.H {
	return gin.H{
		"open":        s.IsOpen(),
		"view":        s.View(),
		"query":       s.Query(),
		"predictions": s.Predictions(),
		"favorites":   s.Favorites(),
		"region":      s.Region(),
	}
}
