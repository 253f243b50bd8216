package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/session"
)

var ErrBadCredentials = errors.New("invalid username or password")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateFromDraft persists a validated account snapshot and returns the new
// user ID. The snapshot arrives cleaned; this layer owns hashing and the
// role/verified_applier invariant.
func (s *Service) CreateFromDraft(ctx context.Context, snap drafts.UserSnapshot) (string, error) {
	if strings.TrimSpace(snap.Username) == "" || strings.TrimSpace(snap.Password) == "" {
		return "", errors.New("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(snap.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user := User{
		ID:              uuid.NewString(),
		Username:        snap.Username,
		Firstname:       snap.Firstname,
		Lastname:        snap.Lastname,
		PasswordHash:    string(hash),
		Role:            snap.Role,
		Points:          snap.Points,
		BonusPoints:     snap.BonusPoints,
		CompleteChange:  snap.CompleteChange,
		VerifiedApplier: snap.VerifiedApplier && snap.Role == session.RoleApplier,
		Resume:          snap.Resume,
	}
	if user.Role == "" {
		user.Role = session.RoleUser
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// UpdateFromDraft overwrites an existing user from a validated snapshot. An
// empty password leaves the stored hash untouched; it is never written as an
// empty string.
func (s *Service) UpdateFromDraft(ctx context.Context, targetID string, snap drafts.UserSnapshot) error {
	if strings.TrimSpace(targetID) == "" {
		return errors.New("target user id is required")
	}
	existing, err := s.Repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	existing.Username = snap.Username
	existing.Firstname = snap.Firstname
	existing.Lastname = snap.Lastname
	existing.Role = snap.Role
	existing.Points = snap.Points
	existing.BonusPoints = snap.BonusPoints
	existing.CompleteChange = snap.CompleteChange
	existing.VerifiedApplier = snap.VerifiedApplier && snap.Role == session.RoleApplier
	existing.Resume = snap.Resume

	if password := strings.TrimSpace(snap.Password); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		existing.PasswordHash = string(hash)
	}

	return s.Repo.Update(ctx, existing)
}

// Authenticate checks credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrBadCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrBadCredentials
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

// Remove deletes a user account.
func (s *Service) Remove(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("user id is required")
	}
	return s.Repo.Delete(ctx, id)
}

// SaveFromDraft stores a finished resume draft on the subject's account and
// returns the account ID it landed on.
func (s *Service) SaveFromDraft(ctx context.Context, subject string, snap drafts.ResumeSnapshot) (string, error) {
	if err := s.SaveResume(ctx, subject, snap); err != nil {
		return "", err
	}
	return subject, nil
}

// SaveResume replaces the stored resume for a user.
func (s *Service) SaveResume(ctx context.Context, userID string, resume drafts.ResumeSnapshot) error {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Resume = resume
	return s.Repo.Update(ctx, user)
}
