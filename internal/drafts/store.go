package drafts

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("draft not found")
	ErrSubmitting = errors.New("draft submit already in flight")
)

// Store keeps live drafts in memory, keyed by draft ID and scoped to the
// owning subject. Drafts do not survive a restart; the persisted entities do.
// Every draft leaving the store is a deep copy; the live draft is only ever
// touched under the store lock.
type Store struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewStore() *Store {
	return &Store{drafts: make(map[string]*Draft)}
}

// Begin creates a draft, empty or seeded by the caller, and returns a copy.
func (s *Store) Begin(subject string, kind Kind, mode Mode, seed func(*Draft)) *Draft {
	d := &Draft{
		ID:      uuid.NewString(),
		Subject: subject,
		Kind:    kind,
		Mode:    mode,
		Errors:  map[string]string{},
	}
	if seed != nil {
		seed(d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d
	return d.clone()
}

// Get returns a copy of the subject's draft by ID.
func (s *Store) Get(subject, id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok || d.Subject != subject {
		return nil, ErrNotFound
	}
	return d.clone(), nil
}

// Mutate runs fn against the draft under the store lock.
func (s *Store) Mutate(subject, id string, fn func(*Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok || d.Subject != subject {
		return ErrNotFound
	}
	if d.submitting {
		return ErrSubmitting
	}
	return fn(d)
}

// BeginSubmit marks the draft as having a submit in flight and returns a copy
// for the caller to validate and snapshot. At most one submit per draft runs
// at a time; a second attempt fails until EndSubmit.
func (s *Store) BeginSubmit(subject, id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok || d.Subject != subject {
		return nil, ErrNotFound
	}
	if d.submitting {
		return nil, ErrSubmitting
	}
	d.submitting = true
	return d.clone(), nil
}

// EndSubmit clears the in-flight flag and, on success, discards the draft.
// On failure, a non-nil errs map replaces the live draft's errors so the
// outcome of the attempt is visible to later reads.
func (s *Store) EndSubmit(id string, succeeded bool, errs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return
	}
	d.submitting = false
	if succeeded {
		delete(s.drafts, id)
		return
	}
	if errs != nil {
		copied := make(map[string]string, len(errs))
		for key, msg := range errs {
			copied[key] = msg
		}
		d.Errors = copied
	}
}

// Discard removes the subject's draft.
func (s *Store) Discard(subject, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.drafts[id]; ok && d.Subject == subject {
		delete(s.drafts, id)
	}
}
