// README: User profile aggregate: display name plus the chosen home location.
package profile

import (
	"time"

	"pulse/internal/types"
)

type Profile struct {
	UID       types.ID
	Username  string
	Address   string
	Latitude  float64
	Longitude float64
	UpdatedAt time.Time
}

// HasLocation reports whether the user has ever picked a home location.
func (p *Profile) HasLocation() bool {
	return p.Address != ""
}
