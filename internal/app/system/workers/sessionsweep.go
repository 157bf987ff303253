// internal/app/system/workers/sessionsweep.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/store/authsessions"
	"go.uber.org/zap"
)

// SessionSweep is a background worker that deletes expired refresh
// sessions. Mongo's TTL monitor reclaims them too; the sweep keeps
// deployments without one (and long-lived test databases) tidy.
type SessionSweep struct {
	sessions *authsessions.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewSessionSweep creates a sweep worker that runs every interval.
func NewSessionSweep(sessStore *authsessions.Store, logger *zap.Logger, interval time.Duration) *SessionSweep {
	return &SessionSweep{
		sessions: sessStore,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *SessionSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("session sweep worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *SessionSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("session sweep worker stopped")
}

func (w *SessionSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SessionSweep) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.sessions.PurgeExpired(ctx)
	if err != nil {
		w.log.Error("failed to purge expired auth sessions", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("purged expired auth sessions", zap.Int64("count", count))
	}
}
