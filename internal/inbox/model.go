package inbox

import (
	"context"
	"time"
)

// Kind distinguishes the three intake forms that land in the back office.
type Kind string

const (
	KindDemo     Kind = "demo"
	KindContact  Kind = "contact"
	KindDownload Kind = "download"
)

// Status is the moderation state of an entry.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus maps a request value onto a known status. Unknown values come
// back false so handlers can reject them.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	default:
		return "", false
	}
}

// Entry is one submitted form. Subject is set when the submitter was
// authenticated; marketing-page submissions leave it empty.
type Entry struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Subject   string    `json:"subject,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message,omitempty"`
	Status    Status    `json:"status"`
	HandledBy string    `json:"handled_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "inbox entry not found" }

// Repo persists inbox entries.
type Repo interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	ListByKind(ctx context.Context, kind Kind) ([]Entry, error)
	Update(ctx context.Context, e Entry) error
}
