package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger drops expired games and reports how many it removed.
type Purger interface {
	PurgeExpired() int
}

type Worker struct {
	store    Purger
	interval time.Duration
	logger   *zap.SugaredLogger
}

func NewWorker(store Purger, interval time.Duration, logger *zap.SugaredLogger) *Worker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Worker{store: store, interval: interval, logger: logger}
}

// Start runs one cleanup right away, then one per interval until ctx is done.
// The returned channel is closed once the worker has stopped.
func (w *Worker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.RunOnce()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.RunOnce()
			}
		}
	}()
	w.logger.Infof("[CLEANUP] Background worker started, interval %s", w.interval)
	return done
}

// RunOnce executes a single cleanup pass.
func (w *Worker) RunOnce() int {
	removed := w.store.PurgeExpired()
	if removed > 0 {
		w.logger.Infof("[CLEANUP] Removed %d expired games", removed)
	}
	return removed
}
