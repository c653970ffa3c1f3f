// Package session holds the in-memory authenticated identity for the
// running process and the scheduler that keeps its credentials fresh.
package session

import (
	"sync"

	"github.com/learnpath/lmscli/internal/client/models"
)

// Store is the authoritative record of the current identity. There is one
// instance per process; only the auth controller and the refresh scheduler
// mutate it, everything else reads.
type Store struct {
	mu   sync.RWMutex
	user *models.User
}

func NewStore() *Store {
	return &Store{}
}

// SetUser replaces the current identity and marks the session authenticated.
func (s *Store) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return
	}
	copied := *u
	s.user = &copied
}

// Clear drops the identity and marks the session unauthenticated.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Current returns a copy of the identity and whether one is present.
func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated is true iff an identity is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}
