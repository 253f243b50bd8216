package session

import (
	"sync"
	"time"
)

// Store is the registry of issued credentials, one active slot per subject.
// Login and signup overwrite the slot; logout and detected expiry clear it.
// No other package holds credentials.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	token     string
	expiresAt time.Time
}

func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Set records the active credential for a subject, replacing any previous one.
func (s *Store) Set(subject, token string, expiresAt time.Time) {
	if subject == "" || token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[subject] = entry{token: token, expiresAt: expiresAt}
}

// Get returns the stored credential verbatim.
func (s *Store) Get(subject string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[subject]
	if !ok {
		return "", false
	}
	return e.token, true
}

// Clear removes the subject's credential. Clearing an absent slot is a no-op.
func (s *Store) Clear(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, subject)
}

// Len reports the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// sweep removes every entry whose credential no longer passes Valid and
// returns the affected subjects. Each expired subject is returned exactly
// once: the entry is gone before the next sweep can see it.
func (s *Store) sweep(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired []string
	for subject, e := range s.entries {
		if Valid(e.token, now) == nil {
			delete(s.entries, subject)
			expired = append(expired, subject)
		}
	}
	return expired
}
