package session

import (
	"time"

	"resumevar-backend/internal/shared/telemetry"
)

// Watcher periodically sweeps the store and evicts expired sessions. There is
// one watcher per process with one configurable interval; individual call
// sites must not run their own expiry polling.
type Watcher struct {
	store    *Store
	interval time.Duration
	onExpire func(subject string)
	stop     chan struct{}
	done     chan struct{}
}

// NewWatcher builds a watcher. onExpire may be nil; it fires once per evicted
// subject.
func NewWatcher(store *Store, interval time.Duration, onExpire func(subject string)) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{
		store:    store,
		interval: interval,
		onExpire: onExpire,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. Call Stop to release the ticker.
func (w *Watcher) Start() {
	go w.run()
}

// Stop terminates the sweep loop and waits for it to exit.
func (w *Watcher) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			return
		case now := <-ticker.C:
			w.Sweep(now.UTC())
		}
	}
}

// Sweep runs a single eviction pass. Exposed so tests and shutdown paths can
// force a pass without waiting for the ticker.
func (w *Watcher) Sweep(now time.Time) {
	expired := w.store.sweep(now)
	for _, subject := range expired {
		telemetry.Info("session.expired", map[string]any{"subject": subject})
		if w.onExpire != nil {
			w.onExpire(subject)
		}
	}
}
