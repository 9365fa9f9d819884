// README: Common identifier and location value objects used across modules.
package types

// ID is an opaque identifier (Firebase UID, pulse ID, place ID).
type ID string

// Point is a bare coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a resolved address plus its coordinates. Produced by any
// resolution path (search selection, map confirmation, precise-location fetch)
// and passed by value; never mutated after construction.
type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
