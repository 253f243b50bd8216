package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := GeneratedResume{
		ID:             "resume-1",
		UserID:         "user-1",
		Company:        "Acme Corp",
		JobDescription: "Go backend role",
		StorageKey:     "abc/resume_acme.pdf",
		SizeBytes:      2048,
	}

	mock.ExpectExec("INSERT INTO generated_resumes").
		WithArgs(
			rec.ID,
			rec.UserID,
			rec.Company,
			rec.JobDescription,
			rec.StorageKey,
			rec.SizeBytes,
			false,
			nil,
			false,
			false,
			false,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansLifecycleFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	appliedAt := now.Add(-time.Hour)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "company_name", "job_description", "storage_key", "size_bytes",
		"applied", "applied_at", "reported", "verified", "expired", "created_at", "updated_at",
	}).AddRow("resume-1", "user-1", "Acme", "jd", "key", int64(2048),
		true, appliedAt, false, true, false, now, now)

	mock.ExpectQuery("SELECT (.+) FROM generated_resumes").
		WithArgs("resume-1").
		WillReturnRows(rows)

	rec, err := repo.GetByID(context.Background(), "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !rec.Applied || rec.AppliedAt == nil || !rec.AppliedAt.Equal(appliedAt) {
		t.Fatalf("applied fields wrong: %+v", rec)
	}
	if !rec.Verified || rec.Reported || rec.Expired {
		t.Fatalf("flags wrong: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE generated_resumes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), GeneratedResume{ID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
