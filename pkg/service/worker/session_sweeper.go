package worker

import (
	"context"
	"time"

	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

// SessionExpirer drops sessions idle for longer than maxIdle and reports how many were dropped
type SessionExpirer interface {
	ExpireIdle(ctx context.Context, maxIdle time.Duration) int
}

// SessionSweeper periodically expires idle dashboard sessions.
//
// Sessions live in process memory, so the sweeper assumes a single server instance.
type SessionSweeper struct {
	sessions SessionExpirer
	maxIdle  time.Duration
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionSweeper creates a sweeper checking every interval
func NewSessionSweeper(sessions SessionExpirer, maxIdle, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		maxIdle:  maxIdle,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the sweep loop in a background goroutine
func (w *SessionSweeper) Start(ctx context.Context) {
	logging.Default().Info("Session sweeper starting",
		"max_idle", w.maxIdle.String(),
		"interval", w.interval.String())

	go w.run(ctx)
}

// Stop signals the sweeper to stop and waits for completion
func (w *SessionSweeper) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Session sweeper stopped")
}

func (w *SessionSweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Session sweeper context cancelled")
			return
		}
	}
}

func (w *SessionSweeper) sweep(ctx context.Context) {
	if n := w.sessions.ExpireIdle(ctx, w.maxIdle); n > 0 {
		logging.Default().Info("Expired idle sessions", "count", n)
	}
}
