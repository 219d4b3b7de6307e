// Package state provides the session-scoped key/value store that
// mediates stage-to-stage communication within a single pipeline run.
package state

import "github.com/google/uuid"

// Store is an ordered key/value container owned exclusively by one
// pipeline run. Keys preserve insertion order; values are JSON-like
// structured data. The store is not safe for concurrent mutation:
// stages within a run execute strictly sequentially, and concurrent
// runs each get their own store.
type Store struct {
	sessionID string
	values    map[string]any
	order     []string
}

// New creates a fresh store for a new run, generating a session ID.
func New() *Store {
	return NewWithSession(uuid.NewString())
}

// NewWithSession creates a store bound to an existing session ID.
func NewWithSession(sessionID string) *Store {
	return &Store{
		sessionID: sessionID,
		values:    make(map[string]any),
	}
}

// SessionID returns the opaque identifier for this run.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Get returns the value stored under key and whether it is present.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key. Re-setting an existing key overwrites the
// value but keeps its original position in the key order.
func (s *Store) Set(key string, value any) {
	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns all keys in insertion order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}
