// Package session holds the per-UI-session drawer state. Each session owns
// exactly one navigation stack; handlers mutate it only through the stack's
// documented transitions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier-api/internal/navstack"
	"github.com/atelierhq/atelier-api/pkg/logger"
)

// Session pairs a drawer stack with its last-touched time for idle eviction.
type Session struct {
	ID       string
	Stack    *navstack.Stack
	LastSeen time.Time
}

// Store is an in-memory session registry. Sessions are cheap; losing them on
// restart only closes open drawers.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore creates a store that evicts sessions idle longer than ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session and returns its id.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		Stack:    navstack.New(),
		LastSeen: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.LastSeen = time.Now()
	return sess, true
}

// Delete removes a session, closing its drawer.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.Stack.CloseAll()
		delete(s.sessions, id)
	}
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts idle sessions and returns how many were removed. Scheduled
// on the background worker.
func (s *Store) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			sess.Stack.CloseAll()
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Info("Swept idle drawer sessions", "removed", removed, "remaining", len(s.sessions))
	}
	return removed
}
