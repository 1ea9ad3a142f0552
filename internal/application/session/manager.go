// Package session tracks the currently signed-in user for this device.
//
// The process serves one person; the session holds at most one identity
// at a time. Components that care about the authenticated/anonymous
// split (backend routing, queue replay, migration) subscribe to
// transitions instead of polling.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Manager holds the current auth state and fans out transitions.
type Manager struct {
	mu            sync.RWMutex
	userID        uuid.UUID
	email         string
	authenticated bool
	subscribers   map[int]func(authenticated bool)
	nextID        int
}

// NewManager creates an anonymous session manager.
func NewManager() *Manager {
	return &Manager{
		subscribers: make(map[int]func(bool)),
	}
}

// SignIn records the signed-in user and notifies subscribers when the
// auth state actually changed.
func (m *Manager) SignIn(userID uuid.UUID, email string) {
	m.mu.Lock()
	changed := !m.authenticated || m.userID != userID
	m.userID = userID
	m.email = email
	m.authenticated = true
	fns := m.subscriberList()
	m.mu.Unlock()

	if changed {
		for _, fn := range fns {
			fn(true)
		}
	}
}

// SignOut drops the current identity and notifies subscribers.
func (m *Manager) SignOut() {
	m.mu.Lock()
	changed := m.authenticated
	m.userID = uuid.Nil
	m.email = ""
	m.authenticated = false
	fns := m.subscriberList()
	m.mu.Unlock()

	if changed {
		for _, fn := range fns {
			fn(false)
		}
	}
}

// Current returns the signed-in user's id and email, and whether a user
// is signed in at all.
func (m *Manager) Current() (uuid.UUID, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userID, m.email, m.authenticated
}

// Authenticated reports whether a user is currently signed in.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// Subscribe registers a callback invoked after every auth transition.
// The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(authenticated bool)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// subscriberList snapshots the callbacks; callers invoke them outside
// the lock so a subscriber may re-enter the manager.
func (m *Manager) subscriberList() []func(bool) {
	fns := make([]func(bool), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	return fns
}
