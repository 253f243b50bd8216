package users

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/session"
)

func TestPGRepoCreateMapsDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_username_lower_idx"`))

	err = repo.Create(context.Background(), User{ID: "user-1", Username: "jordan@example.com"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByUsernameScansResume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	resumeJSON, err := json.Marshal(drafts.ResumeSnapshot{
		Name:     "Jordan Reyes",
		JobTitle: "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rows := sqlmock.NewRows([]string{
		"id", "username", "firstname", "lastname", "password_hash", "role",
		"points", "bonus_points", "complete_change", "verified_applier", "resume",
		"created_at", "updated_at",
	}).AddRow("user-1", "jordan@example.com", "Jordan", "Reyes", "hash", "tier2",
		10, 2, false, false, resumeJSON, now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("jordan@example.com").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "jordan@example.com")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.Role != session.RoleTier2 {
		t.Fatalf("role = %q, want tier2", user.Role)
	}
	if user.Resume.Name != "Jordan Reyes" {
		t.Fatalf("resume not decoded: %+v", user.Resume)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), User{ID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
