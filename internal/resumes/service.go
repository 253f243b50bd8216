package resumes

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumevar-backend/internal/queue"
	"resumevar-backend/internal/shared/storage/object"
	"resumevar-backend/internal/shared/telemetry"
	"resumevar-backend/internal/users"
)

// ErrNoResume reports a generation attempt by a user with no stored resume.
var ErrNoResume = errors.New("no stored resume to generate from")

// Service generates tailored resume PDFs and manages their lifecycle.
type Service struct {
	Repo    Repo
	Users   *users.Service
	Objects object.Store
	Queue   queue.Client // nil when no queue is configured
}

func NewService(repo Repo, userSvc *users.Service, objects object.Store, q queue.Client) *Service {
	return &Service{Repo: repo, Users: userSvc, Objects: objects, Queue: q}
}

// Generate renders the caller's stored resume into a PDF tailored to a job
// posting, persists the blob and record, and returns both.
func (s *Service) Generate(ctx context.Context, userID, company, jobDescription string) (GeneratedResume, []byte, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return GeneratedResume{}, nil, err
	}
	if strings.TrimSpace(user.Resume.Name) == "" {
		return GeneratedResume{}, nil, ErrNoResume
	}

	doc := composeDocument(user.Resume, company)
	data := doc.Bytes()

	fileName := pdfFileName(company)
	storageKey, size, err := s.Objects.Save(ctx, userID, fileName, "application/pdf", bytes.NewReader(data))
	if err != nil {
		return GeneratedResume{}, nil, err
	}

	rec := GeneratedResume{
		ID:             uuid.NewString(),
		UserID:         userID,
		Company:        strings.TrimSpace(company),
		JobDescription: strings.TrimSpace(jobDescription),
		StorageKey:     storageKey,
		SizeBytes:      size,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		if delErr := s.Objects.Delete(ctx, storageKey); delErr != nil {
			telemetry.Error("resumes.blob_orphaned", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return GeneratedResume{}, nil, err
	}

	s.publish(ctx, queue.KindResumeGenerated, userID, rec.ID, rec.Company)
	return rec, data, nil
}

// ListForUser returns the caller's generated resumes, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]GeneratedResume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Text extracts the plain text of a generated resume. Non-owners only get
// access when allowAny is set by a moderation caller.
func (s *Service) Text(ctx context.Context, userID, id string, allowAny bool) (string, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if rec.UserID != userID && !allowAny {
		return "", ErrNotFound
	}
	return extractText(ctx, s.Objects, rec.StorageKey)
}

// MarkApplied records that the owner submitted this resume to the posting.
func (s *Service) MarkApplied(ctx context.Context, userID, id string) (GeneratedResume, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return GeneratedResume{}, err
	}
	if rec.UserID != userID {
		return GeneratedResume{}, ErrNotFound
	}
	if !rec.Applied {
		now := time.Now().UTC()
		rec.Applied = true
		rec.AppliedAt = &now
		if err := s.Repo.Update(ctx, rec); err != nil {
			return GeneratedResume{}, err
		}
		s.publish(ctx, queue.KindJobApplied, userID, rec.ID, rec.Company)
	}
	return rec, nil
}

// Remove deletes a generated resume record and its stored blob.
func (s *Service) Remove(ctx context.Context, id string) error {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Objects.Delete(ctx, rec.StorageKey); err != nil {
		telemetry.Error("resumes.blob_orphaned", map[string]any{
			"storage_key": rec.StorageKey,
			"error":       err.Error(),
		})
	}
	return nil
}

// Expire marks a posting as no longer open and drops the stored blob while
// keeping the record for bookkeeping.
func (s *Service) Expire(ctx context.Context, id string) (GeneratedResume, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return GeneratedResume{}, err
	}
	if rec.Expired {
		return rec, nil
	}
	rec.Expired = true
	if err := s.Repo.Update(ctx, rec); err != nil {
		return GeneratedResume{}, err
	}
	if err := s.Objects.Delete(ctx, rec.StorageKey); err != nil {
		telemetry.Error("resumes.blob_orphaned", map[string]any{
			"storage_key": rec.StorageKey,
			"error":       err.Error(),
		})
	}
	return rec, nil
}

// Report flags a posting for moderator review.
func (s *Service) Report(ctx context.Context, id string) (GeneratedResume, error) {
	return s.setFlags(ctx, id, func(rec *GeneratedResume) {
		rec.Reported = true
	})
}

// Verify marks a posting as checked, clearing any report flag.
func (s *Service) Verify(ctx context.Context, id string) (GeneratedResume, error) {
	return s.setFlags(ctx, id, func(rec *GeneratedResume) {
		rec.Verified = true
		rec.Reported = false
	})
}

func (s *Service) setFlags(ctx context.Context, id string, apply func(*GeneratedResume)) (GeneratedResume, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return GeneratedResume{}, err
	}
	apply(&rec)
	if err := s.Repo.Update(ctx, rec); err != nil {
		return GeneratedResume{}, err
	}
	return rec, nil
}

func (s *Service) publish(ctx context.Context, kind, subject, targetID, company string) {
	if s.Queue == nil {
		return
	}
	evt := queue.Event{
		Kind:       kind,
		Subject:    subject,
		TargetID:   targetID,
		Company:    company,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Version:    1,
	}
	if err := s.Queue.Send(ctx, evt); err != nil {
		telemetry.Error("resumes.event_publish_failed", map[string]any{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}

func pdfFileName(company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return "resume.pdf"
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, company)
	if cleaned == "" {
		return "resume.pdf"
	}
	return "resume_" + strings.ToLower(cleaned) + ".pdf"
}
