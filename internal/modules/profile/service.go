// README: Profile service; validation on top of the store.
package profile

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"pulse/internal/types"
)

var (
	ErrNotFound   = errors.New("profile not found")
	ErrBadRequest = errors.New("bad request")
)

const maxUsernameLen = 40

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, uid types.ID) (*Profile, error) {
	return s.store.Get(ctx, uid)
}

func (s *Service) SetUsername(ctx context.Context, uid types.ID, username string) error {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLen {
		return ErrBadRequest
	}
	return s.store.UpsertUsername(ctx, uid, username, time.Now().UTC())
}

// SetLocation persists the picker's result as the user's home location.
func (s *Service) SetLocation(ctx context.Context, uid types.ID, loc types.Location) error {
	if strings.TrimSpace(loc.Address) == "" {
		return ErrBadRequest
	}
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return ErrBadRequest
	}
	return s.store.UpsertLocation(ctx, uid, loc, time.Now().UTC())
}
