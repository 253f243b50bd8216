package analytics

import (
	"context"
	"errors"
	"testing"

	"resumevar-backend/internal/queue"
)

func TestIngestAndDashboard(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	events := []queue.Event{
		{Kind: queue.KindResumeGenerated, Subject: "user-1"},
		{Kind: queue.KindResumeGenerated, Subject: "user-1"},
		{Kind: queue.KindJobApplied, Subject: "user-1"},
		{Kind: queue.KindDemoBooked, Subject: "user-2"},
		{Kind: queue.KindContactReceived}, // anonymous marketing-page contact
	}
	for _, evt := range events {
		if err := svc.Ingest(ctx, evt); err != nil {
			t.Fatalf("ingest %s: %v", evt.Kind, err)
		}
	}

	counters, err := svc.Dashboard(ctx, "user-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if counters.ResumesGenerated != 2 || counters.JobsApplied != 1 {
		t.Fatalf("user-1 counters %+v", counters)
	}
	if counters.DemosBooked != 0 {
		t.Fatalf("user-1 should not see user-2 activity: %+v", counters)
	}

	summary, err := svc.AdminDashboard(ctx)
	if err != nil {
		t.Fatalf("admin dashboard: %v", err)
	}
	want := Counters{ResumesGenerated: 2, JobsApplied: 1, DemosBooked: 1, ContactsReceived: 1}
	if summary.Totals != want {
		t.Fatalf("totals %+v, want %+v", summary.Totals, want)
	}
	if summary.ActiveUsers != 3 { // user-1, user-2, anonymous
		t.Fatalf("active users %d, want 3", summary.ActiveUsers)
	}
}

func TestIngestRejectsUnknownKind(t *testing.T) {
	svc := NewService(NewMemoryStore())
	err := svc.Ingest(context.Background(), queue.Event{Kind: "mystery.event", Subject: "user-1"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}
