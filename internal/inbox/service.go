package inbox

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumevar-backend/internal/queue"
	"resumevar-backend/internal/shared/telemetry"
	"resumevar-backend/internal/validation"
)

// Service handles intake-form submissions and their moderation.
type Service struct {
	Repo  Repo
	Queue queue.Client // nil when no queue is configured
}

func NewService(repo Repo, q queue.Client) *Service {
	return &Service{Repo: repo, Queue: q}
}

// Submission is the raw form payload before cleaning.
type Submission struct {
	Subject string
	Name    string
	Email   string
	Company string
	Message string
}

// Submit validates and persists a form submission. A non-empty error map
// means nothing was stored.
func (s *Service) Submit(ctx context.Context, kind Kind, sub Submission) (Entry, map[string]string) {
	errs := map[string]string{}
	if msg := validation.Validate("name", sub.Name, validation.Context{}); msg != "" {
		errs["name"] = msg
	}
	if msg := validation.Validate("email", sub.Email, validation.Context{}); msg != "" {
		errs["email"] = msg
	}
	// Demo bookings name the company they want the walkthrough for.
	if kind == KindDemo {
		if msg := validation.Validate("company", sub.Company, validation.Context{}); msg != "" {
			errs["company"] = msg
		}
	}
	if kind == KindContact {
		if msg := validation.Validate("message", sub.Message, validation.Context{}); msg != "" {
			errs["message"] = msg
		}
	}
	if len(errs) > 0 {
		return Entry{}, errs
	}

	entry := Entry{
		ID:      uuid.NewString(),
		Kind:    kind,
		Subject: strings.TrimSpace(sub.Subject),
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Company: strings.TrimSpace(sub.Company),
		Message: strings.TrimSpace(sub.Message),
		Status:  StatusPending,
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return Entry{}, map[string]string{"_": "failed to save submission"}
	}

	s.publish(ctx, entry)
	return entry, nil
}

// List returns the entries of one kind, newest first.
func (s *Service) List(ctx context.Context, kind Kind) ([]Entry, error) {
	return s.Repo.ListByKind(ctx, kind)
}

// Moderate moves an entry to a new status and records who handled it. The
// entry must belong to the given kind; a mismatch reads as not found so one
// moderation surface cannot act on another's entries.
func (s *Service) Moderate(ctx context.Context, kind Kind, id string, status Status, moderatorID string) (Entry, error) {
	entry, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if entry.Kind != kind {
		return Entry{}, ErrNotFound
	}
	entry.Status = status
	entry.HandledBy = moderatorID
	if err := s.Repo.Update(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Service) publish(ctx context.Context, entry Entry) {
	if s.Queue == nil {
		return
	}
	kind := queue.KindContactReceived
	switch entry.Kind {
	case KindDemo:
		kind = queue.KindDemoBooked
	case KindDownload:
		kind = queue.KindDownloadRequested
	}
	evt := queue.Event{
		Kind:       kind,
		Subject:    entry.Subject,
		TargetID:   entry.ID,
		Company:    entry.Company,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Version:    1,
	}
	if err := s.Queue.Send(ctx, evt); err != nil {
		telemetry.Error("inbox.event_publish_failed", map[string]any{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}
