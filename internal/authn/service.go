// Package authn owns the login, signup, and logout flows. It issues
// credentials, registers them with the session store, and is the only writer
// of session state.
package authn

import (
	"context"
	"time"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/session"
	"resumevar-backend/internal/shared/auth"
	"resumevar-backend/internal/users"
)

type Service struct {
	Users      *users.Service
	Sessions   *session.Store
	SessionTTL time.Duration
	Recaptcha  RecaptchaVerifier
}

func NewService(userSvc *users.Service, sessions *session.Store, ttl time.Duration, recaptcha RecaptchaVerifier) *Service {
	if ttl <= 0 {
		ttl = auth.DefaultTTL
	}
	return &Service{Users: userSvc, Sessions: sessions, SessionTTL: ttl, Recaptcha: recaptcha}
}

// Login authenticates credentials and issues a fresh token, replacing any
// previous session for the subject.
func (s *Service) Login(ctx context.Context, username, password string) (string, users.User, error) {
	user, err := s.Users.Authenticate(ctx, username, password)
	if err != nil {
		return "", users.User{}, err
	}
	token, err := s.issue(user)
	if err != nil {
		return "", users.User{}, err
	}
	return token, user, nil
}

// Signup verifies the captcha, creates the account, and logs the new user in.
func (s *Service) Signup(ctx context.Context, snap drafts.UserSnapshot, recaptchaToken string) (string, error) {
	if s.Recaptcha != nil {
		if err := s.Recaptcha.Verify(ctx, recaptchaToken); err != nil {
			return "", err
		}
	}
	id, err := s.Users.CreateFromDraft(ctx, snap)
	if err != nil {
		return "", err
	}
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.issue(user)
}

// IssueFor creates a session for an already-authenticated user, e.g. after
// an OAuth exchange.
func (s *Service) IssueFor(user users.User) (string, error) {
	return s.issue(user)
}

// Logout clears the subject's session. The credential itself becomes useless
// on the next request even if it has not yet expired.
func (s *Service) Logout(subject string) {
	s.Sessions.Clear(subject)
}

func (s *Service) issue(user users.User) (string, error) {
	expiresAt := time.Now().UTC().Add(s.SessionTTL)
	token, err := auth.SignJWT(auth.Claims{
		Sub:       user.ID,
		Role:      string(user.Role),
		Firstname: user.Firstname,
		Email:     user.Username,
		Exp:       expiresAt.Unix(),
	})
	if err != nil {
		return "", err
	}
	s.Sessions.Set(user.ID, token, expiresAt)
	return token, nil
}
