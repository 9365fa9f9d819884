// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/modules/favorites"
	"pulse/internal/modules/picker"
	"pulse/internal/modules/profile"
	"pulse/internal/modules/pulse"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeFavoritesError(c *gin.Context, err error) {
	switch err {
	case favorites.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case favorites.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case favorites.ErrLimitReached, favorites.ErrDuplicateLabel:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeProfileError(c *gin.Context, err error) {
	switch err {
	case profile.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case profile.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writePulseError(c *gin.Context, err error) {
	switch err {
	case pulse.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writePickerError(c *gin.Context, err error) {
	switch err {
	case picker.ErrNoSession, picker.ErrClosed, picker.ErrFavoriteUnknown:
		writeError(c, http.StatusNotFound, err.Error())
	case picker.ErrWrongView, picker.ErrModalOpen, picker.ErrNoPending, picker.ErrConfirmRequired:
		writeError(c, http.StatusConflict, err.Error())
	case picker.ErrPermissionDenied:
		writeError(c, http.StatusForbidden, err.Error())
	case favorites.ErrLimitReached, favorites.ErrDuplicateLabel:
		writeError(c, http.StatusConflict, err.Error())
	case favorites.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case favorites.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
