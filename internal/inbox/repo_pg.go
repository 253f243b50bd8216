package inbox

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const entryColumns = `id, kind, subject, name, email, company, message, status, handled_by, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, e Entry) error {
	const query = `
INSERT INTO inbox_entries (id, kind, subject, name, email, company, message, status, handled_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		string(e.Kind),
		e.Subject,
		e.Name,
		e.Email,
		e.Company,
		e.Message,
		string(e.Status),
		e.HandledBy,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM inbox_entries
WHERE id = $1
LIMIT 1`
	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return e, nil
}

func (r *PGRepo) ListByKind(ctx context.Context, kind Kind) ([]Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM inbox_entries
WHERE kind = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, e Entry) error {
	const query = `
UPDATE inbox_entries SET
  name = $2,
  email = $3,
  company = $4,
  message = $5,
  status = $6,
  handled_by = $7,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.Email,
		e.Company,
		e.Message,
		string(e.Status),
		e.HandledBy,
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var kind, status string
	err := row.Scan(
		&e.ID,
		&kind,
		&e.Subject,
		&e.Name,
		&e.Email,
		&e.Company,
		&e.Message,
		&status,
		&e.HandledBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return Entry{}, err
	}
	e.Kind = Kind(kind)
	e.Status = Status(status)
	return e, nil
}

var _ Repo = (*PGRepo)(nil)
