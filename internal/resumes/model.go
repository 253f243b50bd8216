package resumes

import (
	"context"
	"time"
)

// GeneratedResume is one tailored resume produced for a specific job posting.
// The PDF bytes live in the object store under StorageKey; this record carries
// the application lifecycle the moderation endpoints act on.
type GeneratedResume struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Company        string     `json:"company_name"`
	JobDescription string     `json:"job_description"`
	StorageKey     string     `json:"-"`
	SizeBytes      int64      `json:"size_bytes"`
	Applied        bool       `json:"applied"`
	AppliedAt      *time.Time `json:"applied_at,omitempty"`
	Reported       bool       `json:"reported"`
	Verified       bool       `json:"verified"`
	Expired        bool       `json:"expired"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "generated resume not found" }

// Repo persists generated resume records.
type Repo interface {
	Create(ctx context.Context, rec GeneratedResume) error
	GetByID(ctx context.Context, id string) (GeneratedResume, error)
	ListByUser(ctx context.Context, userID string) ([]GeneratedResume, error)
	Update(ctx context.Context, rec GeneratedResume) error
	Delete(ctx context.Context, id string) error
}
