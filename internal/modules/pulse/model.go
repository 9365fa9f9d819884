// README: Pulse aggregate: a short post pinned to a place.
package pulse

import (
	"time"

	"pulse/internal/types"
)

type Pulse struct {
	ID        types.ID  `json:"id"`
	AuthorID  types.ID  `json:"author_id"`
	Body      string    `json:"body"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// Nearby is a pulse annotated with its distance from the query point.
type Nearby struct {
	Pulse
	DistanceKm float64 `json:"distance_km"`
}
