package cleanup

import (
	"context"
	"sync"
	"time"

	"github.com/iamasit07/clash-of-dots/backend/internal/service/game"
	"go.uber.org/zap"
)

// PendingFlusher retries stats updates that failed earlier.
type PendingFlusher interface {
	FlushPending(ctx context.Context) (int, error)
	PendingCount() int
}

const defaultInterval = time.Minute

type Worker struct {
	SessionManager *game.SessionManager
	Stats          PendingFlusher
	Interval       time.Duration
	IdleTimeout    time.Duration

	log  *zap.Logger
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func NewWorker(sm *game.SessionManager, stats PendingFlusher, interval, idleTimeout time.Duration, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		log.Warn("non-positive cleanup interval, using default", zap.Duration("interval", interval))
		interval = defaultInterval
	}
	return &Worker{
		SessionManager: sm,
		Stats:          stats,
		Interval:       interval,
		IdleTimeout:    idleTimeout,
		log:            log.Named("cleanup"),
		stop:           make(chan struct{}),
	}
}

// Start initiates the background ticker
func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.RunOnce()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.RunOnce()
			case <-w.stop:
				return
			}
		}
	}()
	w.log.Info("background worker started", zap.Duration("interval", w.Interval))
}

func (w *Worker) Stop() {
	w.once.Do(func() { close(w.stop) })
	w.wg.Wait()
}

// RunOnce evicts idle games and retries queued stats updates.
func (w *Worker) RunOnce() {
	if w.SessionManager != nil {
		if removed := w.SessionManager.CleanupIdleSessions(w.IdleTimeout); removed > 0 {
			w.log.Info("removed idle games", zap.Int("count", removed))
		}
	}

	if w.Stats == nil || w.Stats.PendingCount() == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	flushed, err := w.Stats.FlushPending(ctx)
	if err != nil {
		w.log.Warn("stats flush incomplete", zap.Int("flushed", flushed), zap.Int("pending", w.Stats.PendingCount()), zap.Error(err))
		return
	}
	w.log.Info("flushed pending stats", zap.Int("count", flushed))
}
