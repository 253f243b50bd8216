package analytics

import (
	"context"
	"database/sql"
)

type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Increment(ctx context.Context, userID, kind string) error {
	const query = `
INSERT INTO analytics_counters (user_id, kind, count, updated_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (user_id, kind)
DO UPDATE SET count = analytics_counters.count + 1, updated_at = now()`
	_, err := s.DB.ExecContext(ctx, query, userID, kind)
	return err
}

func (s *PGStore) ForUser(ctx context.Context, userID string) (Counters, error) {
	const query = `
SELECT kind, count
FROM analytics_counters
WHERE user_id = $1`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return Counters{}, err
	}
	defer rows.Close()

	var c Counters
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return Counters{}, err
		}
		addCount(&c, kind, n)
	}
	return c, rows.Err()
}

func (s *PGStore) Totals(ctx context.Context) (Summary, error) {
	const query = `
SELECT kind, sum(count)
FROM analytics_counters
GROUP BY kind`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return Summary{}, err
		}
		addCount(&summary.Totals, kind, n)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	const usersQuery = `SELECT count(DISTINCT user_id) FROM analytics_counters`
	if err := s.DB.QueryRowContext(ctx, usersQuery).Scan(&summary.ActiveUsers); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

var _ Store = (*PGStore)(nil)
