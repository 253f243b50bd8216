package analytics

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu     sync.RWMutex
	counts map[string]map[string]int64 // userID -> kind -> count
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]map[string]int64)}
}

func (s *MemoryStore) Increment(ctx context.Context, userID, kind string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	byKind, ok := s.counts[userID]
	if !ok {
		byKind = make(map[string]int64)
		s.counts[userID] = byKind
	}
	byKind[kind]++
	return nil
}

func (s *MemoryStore) ForUser(ctx context.Context, userID string) (Counters, error) {
	if err := ctx.Err(); err != nil {
		return Counters{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countersFromMap(s.counts[userID]), nil
}

func (s *MemoryStore) Totals(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var summary Summary
	for _, byKind := range s.counts {
		c := countersFromMap(byKind)
		summary.Totals.ResumesGenerated += c.ResumesGenerated
		summary.Totals.JobsApplied += c.JobsApplied
		summary.Totals.DemosBooked += c.DemosBooked
		summary.Totals.DownloadsRequested += c.DownloadsRequested
		summary.Totals.ContactsReceived += c.ContactsReceived
		summary.ActiveUsers++
	}
	return summary, nil
}

func countersFromMap(byKind map[string]int64) Counters {
	var c Counters
	for kind, n := range byKind {
		addCount(&c, kind, n)
	}
	return c
}

var _ Store = (*MemoryStore)(nil)
