package session

import (
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()
	s.Set("u-1", "tok-abc", time.Now().Add(time.Hour))

	got, ok := s.Get("u-1")
	if !ok || got != "tok-abc" {
		t.Fatalf("Get = %q, %v", got, ok)
	}
}

func TestStoreOverwriteOnRelogin(t *testing.T) {
	s := NewStore()
	s.Set("u-1", "tok-old", time.Now().Add(time.Hour))
	s.Set("u-1", "tok-new", time.Now().Add(time.Hour))

	got, _ := s.Get("u-1")
	if got != "tok-new" {
		t.Fatalf("expected overwrite, got %q", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected one slot, got %d", s.Len())
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Set("u-1", "tok", time.Now().Add(time.Hour))
	s.Clear("u-1")

	if _, ok := s.Get("u-1"); ok {
		t.Fatal("expected cleared slot")
	}
	// Clearing again is a no-op.
	s.Clear("u-1")
}

func TestWatcherSweepEvictsExpiredOnce(t *testing.T) {
	s := NewStore()
	now := time.Unix(1_700_000_000, 0).UTC()

	expired := tokenWithPayload(t, `{"sub":"u-1","role":"user","exp":1699999000}`)
	live := tokenWithPayload(t, `{"sub":"u-2","role":"user","exp":1700003600}`)
	s.Set("u-1", expired, now.Add(-time.Hour))
	s.Set("u-2", live, now.Add(time.Hour))

	var fired []string
	w := NewWatcher(s, time.Minute, func(subject string) { fired = append(fired, subject) })

	w.Sweep(now)
	if len(fired) != 1 || fired[0] != "u-1" {
		t.Fatalf("expected one eviction for u-1, got %v", fired)
	}
	if _, ok := s.Get("u-1"); ok {
		t.Fatal("expired slot must be cleared")
	}
	if _, ok := s.Get("u-2"); !ok {
		t.Fatal("live slot must survive")
	}

	// Second pass sees no credential and must not fire again.
	w.Sweep(now.Add(time.Minute))
	if len(fired) != 1 {
		t.Fatalf("logout fired twice: %v", fired)
	}
}

func TestWatcherStartStop(t *testing.T) {
	s := NewStore()
	w := NewWatcher(s, 5*time.Millisecond, nil)
	w.Start()
	time.Sleep(20 * time.Millisecond)
	w.Stop()
	// Stop must have released the loop; a second sweep by hand is still safe.
	w.Sweep(time.Now().UTC())
}
