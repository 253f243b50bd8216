package analytics

import "context"

// Counters are the per-user activity tallies shown on the dashboard.
type Counters struct {
	ResumesGenerated   int64 `json:"resumes_generated"`
	JobsApplied        int64 `json:"jobs_applied"`
	DemosBooked        int64 `json:"demos_booked"`
	DownloadsRequested int64 `json:"downloads_requested"`
	ContactsReceived   int64 `json:"contacts_received"`
}

// Summary is the site-wide aggregate for the admin dashboard.
type Summary struct {
	Totals      Counters `json:"totals"`
	ActiveUsers int64    `json:"active_users"`
}

// Store persists activity counters keyed by user and event kind.
type Store interface {
	Increment(ctx context.Context, userID, kind string) error
	ForUser(ctx context.Context, userID string) (Counters, error)
	Totals(ctx context.Context) (Summary, error)
}
