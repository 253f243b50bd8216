package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/session"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	resumeJSON, err := json.Marshal(user.Resume)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO users (id, username, firstname, lastname, password_hash, role, points, bonus_points, complete_change, verified_applier, resume, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`
	_, err = r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Firstname,
		user.Lastname,
		user.PasswordHash,
		string(user.Role),
		user.Points,
		user.BonusPoints,
		user.CompleteChange,
		user.VerifiedApplier,
		resumeJSON,
	)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrUsernameTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (User, error) {
	const query = `
SELECT id, username, firstname, lastname, password_hash, role, points, bonus_points, complete_change, verified_applier, resume, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
SELECT id, username, firstname, lastname, password_hash, role, points, bonus_points, complete_change, verified_applier, resume, created_at, updated_at
FROM users
WHERE lower(username) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	const query = `
SELECT id, username, firstname, lastname, password_hash, role, points, bonus_points, complete_change, verified_applier, resume, created_at, updated_at
FROM users
ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, user User) error {
	resumeJSON, err := json.Marshal(user.Resume)
	if err != nil {
		return err
	}
	const query = `
UPDATE users SET
  username = $2,
  firstname = $3,
  lastname = $4,
  password_hash = $5,
  role = $6,
  points = $7,
  bonus_points = $8,
  complete_change = $9,
  verified_applier = $10,
  resume = $11,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Firstname,
		user.Lastname,
		user.PasswordHash,
		string(user.Role),
		user.Points,
		user.BonusPoints,
		user.CompleteChange,
		user.VerifiedApplier,
		resumeJSON,
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
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var role string
	var resumeJSON []byte
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Firstname,
		&user.Lastname,
		&user.PasswordHash,
		&role,
		&user.Points,
		&user.BonusPoints,
		&user.CompleteChange,
		&user.VerifiedApplier,
		&resumeJSON,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	user.Role = session.ParseRole(role)
	if len(resumeJSON) > 0 {
		var resume drafts.ResumeSnapshot
		if err := json.Unmarshal(resumeJSON, &resume); err == nil {
			user.Resume = resume
		}
	}
	return user, nil
}
