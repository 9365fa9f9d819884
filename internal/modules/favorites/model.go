// README: Saved location model; label is the unique key within a user's set.
package favorites

// SavedLocation is a user-labeled location. Labels are unique per user,
// compared case-insensitively.
type SavedLocation struct {
	Label     string  `json:"label"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MaxSaved caps the favorites set. Enforced at save-time only; a persisted
// list that already exceeds the cap is accepted as-is on load.
const MaxSaved = 3
