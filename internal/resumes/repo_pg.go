package resumes

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, company_name, job_description, storage_key, size_bytes, applied, applied_at, reported, verified, expired, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, rec GeneratedResume) error {
	const query = `
INSERT INTO generated_resumes (id, user_id, company_name, job_description, storage_key, size_bytes, applied, applied_at, reported, verified, expired, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Company,
		rec.JobDescription,
		rec.StorageKey,
		rec.SizeBytes,
		rec.Applied,
		rec.AppliedAt,
		rec.Reported,
		rec.Verified,
		rec.Expired,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (GeneratedResume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM generated_resumes
WHERE id = $1
LIMIT 1`
	rec, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedResume{}, ErrNotFound
		}
		return GeneratedResume{}, err
	}
	return rec, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]GeneratedResume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM generated_resumes
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GeneratedResume, 0)
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, rec GeneratedResume) error {
	const query = `
UPDATE generated_resumes SET
  company_name = $2,
  job_description = $3,
  storage_key = $4,
  size_bytes = $5,
  applied = $6,
  applied_at = $7,
  reported = $8,
  verified = $9,
  expired = $10,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Company,
		rec.JobDescription,
		rec.StorageKey,
		rec.SizeBytes,
		rec.Applied,
		rec.AppliedAt,
		rec.Reported,
		rec.Verified,
		rec.Expired,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM generated_resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (GeneratedResume, error) {
	var rec GeneratedResume
	var appliedAt sql.NullTime
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Company,
		&rec.JobDescription,
		&rec.StorageKey,
		&rec.SizeBytes,
		&rec.Applied,
		&appliedAt,
		&rec.Reported,
		&rec.Verified,
		&rec.Expired,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return GeneratedResume{}, err
	}
	if appliedAt.Valid {
		t := appliedAt.Time
		rec.AppliedAt = &t
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
