// README: Picker manager; at most one live session per user.
package picker

import (
	"context"
	"sync"
	"time"

	"pulse/internal/types"
)

// Manager builds and tracks sessions for the HTTP surface. Opening a new
// picker for a user tears down any previous one, mirroring the
// close-and-reopen behavior of the modal.
type Manager struct {
	geo      Geocoder
	favs     Favorites
	debounce time.Duration

	mu       sync.Mutex
	sessions map[types.ID]*Session
}

func NewManager(g Geocoder, f Favorites, debounce time.Duration) *Manager {
	return &Manager{
		geo:      g,
		favs:     f,
		debounce: debounce,
		sessions: make(map[types.ID]*Session),
	}
}

// Open creates (or replaces) the user's session and opens it.
func (m *Manager) Open(ctx context.Context, uid types.ID, onSelect func(ctx context.Context, loc types.Location)) *Session {
	m.mu.Lock()
	if prev, ok := m.sessions[uid]; ok {
		prev.Close()
	}
	s := NewSession(uid, m.geo, m.favs, m.debounce, func(cbCtx context.Context, loc types.Location) {
		m.remove(uid)
		if onSelect != nil {
			onSelect(cbCtx, loc)
		}
	})
	m.sessions[uid] = s
	m.mu.Unlock()

	s.Open(ctx)
	return s
}

// Get returns the user's live session.
func (m *Manager) Get(uid types.ID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uid]
	if !ok || !s.IsOpen() {
		return nil, ErrNoSession
	}
	return s, nil
}

// Close dismisses the user's session, if any.
func (m *Manager) Close(uid types.ID) {
	m.mu.Lock()
	s, ok := m.sessions[uid]
	delete(m.sessions, uid)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (m *Manager) remove(uid types.ID) {
	m.mu.Lock()
	delete(m.sessions, uid)
	m.mu.Unlock()
}
