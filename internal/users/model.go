package users

import (
	"context"
	"time"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/session"
)

// User is an account record. PasswordHash is a bcrypt digest and never leaves
// the package.
type User struct {
	ID              string                `json:"id"`
	Username        string                `json:"username"`
	Firstname       string                `json:"firstname"`
	Lastname        string                `json:"lastname"`
	PasswordHash    string                `json:"-"`
	Role            session.Role          `json:"role"`
	Points          int                   `json:"points"`
	BonusPoints     int                   `json:"bonus_points"`
	CompleteChange  bool                  `json:"complete_change"`
	VerifiedApplier bool                  `json:"verified_applier"`
	Resume          drafts.ResumeSnapshot `json:"resume"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

var (
	ErrNotFound      = errNotFound{}
	ErrUsernameTaken = errUsernameTaken{}
)

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

type errUsernameTaken struct{}

func (errUsernameTaken) Error() string { return "username already taken" }

type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id string) error
}
