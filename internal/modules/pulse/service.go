// README: Pulse service; create posts and list the feed around a point.
package pulse

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"pulse/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
)

const (
	maxBodyLen      = 500
	defaultRadiusKm = 5.0
	maxRadiusKm     = 50.0
	defaultLimit    = 50
	// boxLimit caps the prefilter scan; the exact-distance refine may drop
	// corner hits, so the box fetches more than the response limit.
	boxLimit = 200
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	AuthorID types.ID
	Body     string
	Location types.Location
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Pulse, error) {
	body := strings.TrimSpace(cmd.Body)
	if cmd.AuthorID == "" || body == "" || utf8.RuneCountInString(body) > maxBodyLen {
		return nil, ErrBadRequest
	}
	if strings.TrimSpace(cmd.Location.Address) == "" {
		return nil, ErrBadRequest
	}
	if cmd.Location.Latitude < -90 || cmd.Location.Latitude > 90 ||
		cmd.Location.Longitude < -180 || cmd.Location.Longitude > 180 {
		return nil, ErrBadRequest
	}

	p := &Pulse{
		ID:        newID(),
		AuthorID:  cmd.AuthorID,
		Body:      body,
		Address:   cmd.Location.Address,
		Latitude:  cmd.Location.Latitude,
		Longitude: cmd.Location.Longitude,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListNearby returns pulses within radiusKm of a point, closest first. A
// bounding box narrows the SQL scan and the haversine distance refines it.
func (s *Service) ListNearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]Nearby, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrBadRequest
	}
	if radiusKm <= 0 {
		radiusKm = defaultRadiusKm
	}
	if radiusKm > maxRadiusKm {
		radiusKm = maxRadiusKm
	}
	if limit <= 0 || limit > defaultLimit {
		limit = defaultLimit
	}

	minLat, maxLat, minLng, maxLng := boundingBox(lat, lng, radiusKm)
	candidates, err := s.store.ListInBox(ctx, minLat, maxLat, minLng, maxLng, boxLimit)
	if err != nil {
		return nil, err
	}

	out := make([]Nearby, 0, len(candidates))
	for _, p := range candidates {
		d := haversineKm(lat, lng, p.Latitude, p.Longitude)
		if d > radiusKm {
			continue
		}
		out = append(out, Nearby{Pulse: p, DistanceKm: d})
	}
	sortByDistance(out, func(n Nearby) float64 { return n.DistanceKm })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
