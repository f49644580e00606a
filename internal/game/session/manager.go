package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Locator answers who is at a location. The game world implements this.
type Locator interface {
	LocationContents(locationID string) []string
}

// Session is one connected player.
type Session struct {
	// UID is the entity ID this session controls.
	UID string
	// Name is the character display name (for logging).
	Name string
	// Entity is the bridge that carries narration to the client.
	Entity *BridgeEntity
}

// Manager tracks active sessions and fans combat narration out to them.
// Implements the combat engine's Sink. All methods are safe for concurrent
// use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	locator Locator
	logger  *zap.Logger
}

// NewManager creates an empty session Manager.
//
// Precondition: locator and logger must be non-nil.
func NewManager(locator Locator, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		locator:  locator,
		logger:   logger,
	}
}

// Attach registers a session for the entity.
//
// Postcondition: returns the created Session, or an error when the entity
// already has one.
func (m *Manager) Attach(uid, name string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[uid]; exists {
		return nil, fmt.Errorf("entity %q already connected", uid)
	}
	sess := &Session{
		UID:    uid,
		Name:   name,
		Entity: NewBridgeEntity(uid, 64),
	}
	m.sessions[uid] = sess
	return sess, nil
}

// Detach closes and removes the entity's session.
//
// Postcondition: returns an error when no session exists.
func (m *Manager) Detach(uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[uid]
	if !exists {
		return fmt.Errorf("entity %q not connected", uid)
	}
	_ = sess.Entity.Close()
	delete(m.sessions, uid)
	return nil
}

// Get returns the session for the entity.
func (m *Manager) Get(uid string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[uid]
	return sess, ok
}

// Count returns the number of connected sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Send delivers a line to one entity. Sessions that cannot keep up lose
// lines rather than stalling the combat engine.
func (m *Manager) Send(entityID, text string) {
	m.mu.RLock()
	sess, ok := m.sessions[entityID]
	m.mu.RUnlock()
	if !ok {
		return
	}
	if err := sess.Entity.Push(text); err != nil {
		m.logger.Debug("dropping line", zap.String("entity", entityID), zap.Error(err))
	}
}

// SendRoom delivers a line to every connected entity at the location except
// those listed.
func (m *Manager) SendRoom(locationID, text string, exclude []string) {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	for _, id := range m.locator.LocationContents(locationID) {
		if skip[id] {
			continue
		}
		m.Send(id, text)
	}
}
