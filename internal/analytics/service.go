package analytics

import (
	"context"
	"errors"
	"strings"

	"resumevar-backend/internal/queue"
)

// ErrUnknownKind reports an event kind the dashboards do not track.
var ErrUnknownKind = errors.New("unknown event kind")

// Service turns queue events into dashboard counters.
type Service struct {
	Store Store
}

func NewService(store Store) *Service {
	return &Service{Store: store}
}

// Ingest applies one queue event to the counters. Events without a subject
// are anonymous submissions and are recorded under a shared bucket so the
// admin totals still see them.
func (s *Service) Ingest(ctx context.Context, evt queue.Event) error {
	if !tracked(evt.Kind) {
		return ErrUnknownKind
	}
	subject := strings.TrimSpace(evt.Subject)
	if subject == "" {
		subject = "anonymous"
	}
	return s.Store.Increment(ctx, subject, evt.Kind)
}

// Dashboard returns the caller's activity counters.
func (s *Service) Dashboard(ctx context.Context, userID string) (Counters, error) {
	return s.Store.ForUser(ctx, userID)
}

// AdminDashboard returns the site-wide aggregates.
func (s *Service) AdminDashboard(ctx context.Context) (Summary, error) {
	return s.Store.Totals(ctx)
}

func tracked(kind string) bool {
	switch kind {
	case queue.KindResumeGenerated, queue.KindJobApplied, queue.KindDemoBooked, queue.KindDownloadRequested, queue.KindContactReceived:
		return true
	default:
		return false
	}
}

func addCount(c *Counters, kind string, n int64) {
	switch kind {
	case queue.KindResumeGenerated:
		c.ResumesGenerated += n
	case queue.KindJobApplied:
		c.JobsApplied += n
	case queue.KindDemoBooked:
		c.DemosBooked += n
	case queue.KindDownloadRequested:
		c.DownloadsRequested += n
	case queue.KindContactReceived:
		c.ContactsReceived += n
	}
}
