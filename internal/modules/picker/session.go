// README: Picker session; coordinates debounced search, map selection, and favorites flows.
package picker

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"pulse/internal/geo"
	"pulse/internal/modules/favorites"
	"pulse/internal/types"
)

// minQueryLen is the shortest query that triggers an autocomplete request.
const minQueryLen = 3

// Geocoder is the outbound places boundary (satisfied by *geo.Client).
type Geocoder interface {
	Autocomplete(ctx context.Context, query string) ([]geo.Prediction, error)
	ResolveDetails(ctx context.Context, placeID string) (types.Location, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// Favorites is the persistence boundary (satisfied by *favorites.Service).
type Favorites interface {
	Load(ctx context.Context, uid types.ID) ([]favorites.SavedLocation, error)
	Save(ctx context.Context, uid types.ID, label string, loc types.Location) error
	Rename(ctx context.Context, uid types.ID, oldLabel, newLabel string) error
	Delete(ctx context.Context, uid types.ID, label string) error
}

// PositionSource is the device capability boundary: a foreground permission
// grant plus a single coordinate fetch. Over HTTP the client device fills this
// in; tests use a fake.
type PositionSource interface {
	RequestPermission(ctx context.Context) (bool, error)
	Current(ctx context.Context) (types.Point, error)
}

// Session is one user's picker. All state transitions are serialized behind a
// single mutex; every terminal selection emits the resolved location through
// onSelect and closes the session.
type Session struct {
	uid      types.ID
	geo      Geocoder
	favs     Favorites
	debounce time.Duration
	onSelect func(ctx context.Context, loc types.Location)

	mu          sync.Mutex
	open        bool
	view        View
	modal       modalKind
	pendingSave *PendingSave
	pendingEdit *PendingEdit
	query       string
	predictions []geo.Prediction
	saved       []favorites.SavedLocation
	region      Region
	timer       *time.Timer
	// seq tags the latest scheduled autocomplete request; responses carrying
	// an older tag are discarded so a slow early response can never clobber a
	// fast later one.
	seq    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a closed session; call Open before anything else.
// onSelect may be nil.
func NewSession(uid types.ID, g Geocoder, f Favorites, debounce time.Duration, onSelect func(ctx context.Context, loc types.Location)) *Session {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Session{uid: uid, geo: g, favs: f, debounce: debounce, onSelect: onSelect}
}

// Open resets the session to the search view with an empty query and reloads
// favorites. Nothing survives a close/reopen cycle; stale predictions from a
// previous session never show.
func (s *Session) Open(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.open = true
	s.view = ViewSearch
	s.modal = modalIdle
	s.pendingSave = nil
	s.pendingEdit = nil
	s.query = ""
	s.predictions = nil
	s.region = DefaultRegion
	s.stopTimerLocked()
	s.seq++
	uid := s.uid
	sctx := s.ctx
	s.mu.Unlock()

	locs, err := s.favs.Load(sctx, uid)
	if err != nil {
		log.Printf("picker: load favorites for %s: %v", uid, err)
		locs = nil
	}
	s.mu.Lock()
	if s.open {
		s.saved = locs
	}
	s.mu.Unlock()
}

// Close tears the session down, cancelling the debounce timer and any
// in-flight request context.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	s.open = false
	s.stopTimerLocked()
	s.seq++
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// SetQuery updates the live search text. Queries shorter than three runes
// clear predictions immediately and schedule nothing; otherwise the pending
// debounce timer is replaced, so a burst of keystrokes issues exactly one
// request, for the final text.
func (s *Session) SetQuery(q string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrClosed
	}
	if s.view != ViewSearch {
		return ErrWrongView
	}
	s.query = q
	s.stopTimerLocked()
	s.seq++
	if utf8.RuneCountInString(q) < minQueryLen {
		s.predictions = nil
		return nil
	}
	seq := s.seq
	s.timer = time.AfterFunc(s.debounce, func() { s.runSearch(seq, q) })
	return nil
}

func (s *Session) runSearch(seq uint64, query string) {
	s.mu.Lock()
	if !s.open || seq != s.seq {
		s.mu.Unlock()
		return
	}
	ctx := s.ctx
	s.mu.Unlock()

	preds, err := s.geo.Autocomplete(ctx, query)
	if err != nil {
		// Best-effort suggestions: keep whatever is on screen, log only.
		log.Printf("picker: autocomplete %q: %v", query, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || seq != s.seq {
		return
	}
	s.predictions = preds
}

// Predictions returns the suggestions for the latest query.
func (s *Session) Predictions() []geo.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]geo.Prediction, len(s.predictions))
	copy(out, s.predictions)
	return out
}

// Favorites returns the saved locations loaded when the picker opened or
// refreshed by the last mutation.
func (s *Session) Favorites() []favorites.SavedLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]favorites.SavedLocation, len(s.saved))
	copy(out, s.saved)
	return out
}

// View reports the current main surface.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// IsOpen reports whether the session is live.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Query returns the live search text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// ChooseOnMap switches from search to the map-pin view.
func (s *Session) ChooseOnMap() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrClosed
	}
	if s.modal != modalIdle {
		return ErrModalOpen
	}
	s.view = ViewMap
	return nil
}

// BackToSearch returns from the map to the search view.
func (s *Session) BackToSearch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrClosed
	}
	s.view = ViewSearch
	return nil
}

// SetRegion records the map viewport as the user pans.
func (s *Session) SetRegion(r Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrClosed
	}
	if s.view != ViewMap {
		return ErrWrongView
	}
	s.region = r
	return nil
}

// Region returns the current map viewport.
func (s *Session) Region() Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region
}

// ConfirmMap reverse-geocodes the viewport center and, on success, emits the
// resolved location and closes the picker. On failure the map view stays up
// and the user may retry.
func (s *Session) ConfirmMap(ctx context.Context) (types.Location, error) {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return types.Location{}, ErrClosed
	}
	if s.view != ViewMap {
		s.mu.Unlock()
		return types.Location{}, ErrWrongView
	}
	lat, lng := s.region.Latitude, s.region.Longitude
	s.mu.Unlock()

	addr, err := s.geo.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return types.Location{}, err
	}
	loc := types.Location{Address: addr, Latitude: lat, Longitude: lng}
	return loc, s.emit(ctx, loc)
}

// SelectPrediction resolves a tapped suggestion's details and, on success,
// emits the location and closes the picker.
func (s *Session) SelectPrediction(ctx context.Context, placeID string) (types.Location, error) {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return types.Location{}, ErrClosed
	}
	if s.view != ViewSearch || s.modal != modalIdle {
		s.mu.Unlock()
		return types.Location{}, ErrWrongView
	}
	s.mu.Unlock()

	loc, err := s.geo.ResolveDetails(ctx, placeID)
	if err != nil {
		return types.Location{}, err
	}
	return loc, s.emit(ctx, loc)
}

// SelectFavorite emits a saved location directly, with no network call.
func (s *Session) SelectFavorite(ctx context.Context, label string) (types.Location, error) {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return types.Location{}, ErrClosed
	}
	var found *favorites.SavedLocation
	for i := range s.saved {
		if strings.EqualFold(s.saved[i].Label, label) {
			found = &s.saved[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return types.Location{}, ErrFavoriteUnknown
	}
	loc := types.Location{Address: found.Address, Latitude: found.Latitude, Longitude: found.Longitude}
	s.mu.Unlock()
	return loc, s.emit(ctx, loc)
}

// UsePreciseLocation asks the device for permission and a coordinate,
// reverse-geocodes it, and on success emits and closes. Any failure leaves the
// current view intact; the user may retry manually.
func (s *Session) UsePreciseLocation(ctx context.Context, src PositionSource) (types.Location, error) {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return types.Location{}, ErrClosed
	}
	s.mu.Unlock()

	granted, err := src.RequestPermission(ctx)
	if err != nil {
		return types.Location{}, err
	}
	if !granted {
		return types.Location{}, ErrPermissionDenied
	}
	pt, err := src.Current(ctx)
	if err != nil {
		return types.Location{}, err
	}
	addr, err := s.geo.ReverseGeocode(ctx, pt.Lat, pt.Lng)
	if err != nil {
		return types.Location{}, err
	}
	loc := types.Location{Address: addr, Latitude: pt.Lat, Longitude: pt.Lng}
	return loc, s.emit(ctx, loc)
}

// BeginSave opens the save modal for a search result. The cap is checked here,
// before the user is asked to type a label.
func (s *Session) BeginSave(placeID, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrClosed
	}
	if s.modal != modalIdle {
		return ErrModalOpen
	}
	if len(s.saved) >= favorites.MaxSaved {
		return favorites.ErrLimitReached
	}
	s.pendingSave = &PendingSave{PlaceID: placeID, Description: description}
	s.modal = modalSaving
	return nil
}

// SubmitSave resolves the pending result's coordinates and persists it under
// the given label. The suggestion's description becomes the stored address.
// On success the modal closes and the picker stays open in the search view.
func (s *Session) SubmitSave(ctx context.Context, label string) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.modal != modalSaving || s.pendingSave == nil {
		s.mu.Unlock()
		return ErrNoPending
	}
	// Label validation happens before any network call.
	if strings.TrimSpace(label) == "" {
		s.mu.Unlock()
		return favorites.ErrBadRequest
	}
	for i := range s.saved {
		if strings.EqualFold(s.saved[i].Label, label) {
			s.mu.Unlock()
			return favorites.ErrDuplicateLabel
		}
	}
	pending := *s.pendingSave
	uid := s.uid
	s.mu.Unlock()

	resolved, err := s.geo.ResolveDetails(ctx, pending.PlaceID)
	if err != nil {
		return err
	}
	loc := types.Location{
		Address:   pending.Description,
		Latitude:  resolved.Latitude,
		Longitude: resolved.Longitude,
	}
	if err := s.favs.Save(ctx, uid, label, loc); err != nil {
		return err
	}
	s.refreshFavorites(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = modalIdle
	s.pendingSave = nil
	return nil
}

// BeginEdit opens the edit modal with a copy of the favorite being relabeled.
func (s *Session) BeginEdit(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrClosed
	}
	if s.modal != modalIdle {
		return ErrModalOpen
	}
	for i := range s.saved {
		if strings.EqualFold(s.saved[i].Label, label) {
			s.pendingEdit = &PendingEdit{SavedLocation: s.saved[i]}
			s.modal = modalEditing
			return nil
		}
	}
	return ErrFavoriteUnknown
}

// SubmitEdit persists the relabel and closes the edit modal.
func (s *Session) SubmitEdit(ctx context.Context, newLabel string) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.modal != modalEditing || s.pendingEdit == nil {
		s.mu.Unlock()
		return ErrNoPending
	}
	oldLabel := s.pendingEdit.Label
	uid := s.uid
	s.mu.Unlock()

	if err := s.favs.Rename(ctx, uid, oldLabel, newLabel); err != nil {
		return err
	}
	s.refreshFavorites(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = modalIdle
	s.pendingEdit = nil
	return nil
}

// CancelModal discards any pending save or edit.
func (s *Session) CancelModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = modalIdle
	s.pendingSave = nil
	s.pendingEdit = nil
}

// DeleteFavorite removes a saved location. The confirmed flag is the
// destructive-action confirmation; without it nothing is touched.
func (s *Session) DeleteFavorite(ctx context.Context, label string, confirmed bool) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrClosed
	}
	uid := s.uid
	s.mu.Unlock()

	if !confirmed {
		return ErrConfirmRequired
	}
	if err := s.favs.Delete(ctx, uid, label); err != nil {
		return err
	}
	s.refreshFavorites(ctx)
	return nil
}

func (s *Session) refreshFavorites(ctx context.Context) {
	locs, err := s.favs.Load(ctx, s.uid)
	if err != nil {
		log.Printf("picker: refresh favorites for %s: %v", s.uid, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		s.saved = locs
	}
}

// emit is the terminal success transition: deliver the location to the caller
// and close the whole picker.
func (s *Session) emit(ctx context.Context, loc types.Location) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrClosed
	}
	cb := s.onSelect
	s.closeLocked()
	s.mu.Unlock()
	if cb != nil {
		cb(ctx, loc)
	}
	return nil
}
