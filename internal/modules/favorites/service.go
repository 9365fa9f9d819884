// README: Favorites service enforces the 3-entry cap and case-insensitive label uniqueness.
package favorites

import (
	"context"
	"errors"
	"strings"

	"pulse/internal/types"
)

var (
	ErrLimitReached   = errors.New("favorite limit reached")
	ErrDuplicateLabel = errors.New("label already exists")
	ErrNotFound       = errors.New("favorite not found")
	ErrBadRequest     = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Load(ctx context.Context, uid types.ID) ([]SavedLocation, error) {
	return s.store.Load(ctx, uid)
}

// Save appends a new labeled location. Rejected before any write when the cap
// is reached or the label collides case-insensitively with an existing entry.
func (s *Service) Save(ctx context.Context, uid types.ID, label string, loc types.Location) error {
	if strings.TrimSpace(label) == "" {
		return ErrBadRequest
	}
	locs, err := s.store.Load(ctx, uid)
	if err != nil {
		return err
	}
	if len(locs) >= MaxSaved {
		return ErrLimitReached
	}
	if indexByLabel(locs, label) >= 0 {
		return ErrDuplicateLabel
	}
	locs = append(locs, SavedLocation{
		Label:     label,
		Address:   loc.Address,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	})
	return s.store.Replace(ctx, uid, locs)
}

// Rename relabels an entry. Renaming to the entry's own label (any casing)
// succeeds and only adjusts the stored casing; colliding with a different
// entry is rejected.
func (s *Service) Rename(ctx context.Context, uid types.ID, oldLabel, newLabel string) error {
	if strings.TrimSpace(newLabel) == "" {
		return ErrBadRequest
	}
	locs, err := s.store.Load(ctx, uid)
	if err != nil {
		return err
	}
	idx := indexByLabel(locs, oldLabel)
	if idx < 0 {
		return ErrNotFound
	}
	if !strings.EqualFold(newLabel, oldLabel) && indexByLabel(locs, newLabel) >= 0 {
		return ErrDuplicateLabel
	}
	locs[idx].Label = newLabel
	return s.store.Replace(ctx, uid, locs)
}

// Delete removes the entry matching label. An unknown label is a no-op.
// Destructive-action confirmation happens one layer up, before this is called.
func (s *Service) Delete(ctx context.Context, uid types.ID, label string) error {
	locs, err := s.store.Load(ctx, uid)
	if err != nil {
		return err
	}
	idx := indexByLabel(locs, label)
	if idx < 0 {
		return nil
	}
	locs = append(locs[:idx], locs[idx+1:]...)
	return s.store.Replace(ctx, uid, locs)
}

func indexByLabel(locs []SavedLocation, label string) int {
	for i, l := range locs {
		if strings.EqualFold(l.Label, label) {
			return i
		}
	}
	return -1
}
