// README: Picker view/modal state definitions and transient records.
package picker

import (
	"errors"

	"pulse/internal/modules/favorites"
)

// View is the main picker surface: text search or map-pin placement. The two
// are mutually exclusive.
type View string

const (
	ViewSearch View = "search"
	ViewMap    View = "map"
)

// modalKind is a tagged state for the overlay, so that the save and edit
// modals can never be open at the same time.
type modalKind int

const (
	modalIdle modalKind = iota
	modalSaving
	modalEditing
)

// PendingSave captures which search result the user wants to label. Alive only
// between "tap star" and submit/cancel.
type PendingSave struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// PendingEdit is a copy of the favorite being relabeled, alive only while the
// edit modal is open.
type PendingEdit struct {
	favorites.SavedLocation
}

// Region is the map viewport's center and zoom. Only the center is used when
// the user confirms a map-based selection.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// DefaultRegion is the initial map viewport before the user pans anywhere.
var DefaultRegion = Region{
	Latitude:       37.7749,
	Longitude:      -122.4194,
	LatitudeDelta:  0.0922,
	LongitudeDelta: 0.0421,
}

var (
	ErrClosed           = errors.New("picker session closed")
	ErrWrongView        = errors.New("operation not valid in current view")
	ErrModalOpen        = errors.New("a modal is already open")
	ErrNoPending        = errors.New("no pending save or edit")
	ErrConfirmRequired  = errors.New("confirmation required")
	ErrPermissionDenied = errors.New("location permission denied")
	ErrNoSession        = errors.New("no open picker session")
	ErrFavoriteUnknown  = errors.New("unknown favorite")
)
