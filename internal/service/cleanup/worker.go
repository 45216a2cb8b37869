package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/connect4/pkg/logger"
	"github.com/rs/zerolog"
)

// Sweeper removes stale games and reports how many went.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

type Worker struct {
	sweeper  Sweeper
	interval time.Duration
	log      zerolog.Logger
}

const defaultInterval = 10 * time.Minute

func NewWorker(sweeper Sweeper, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{
		sweeper:  sweeper,
		interval: interval,
		log:      logger.Component("cleanup"),
	}
}

// Start sweeps once straight away and then on every tick until ctx is done.
// The returned channel is closed when the worker has stopped.
func (w *Worker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.log.Info().Dur("interval", w.interval).Msg("Background worker started")
		w.runCleanup(ctx)
		for {
			select {
			case <-ctx.Done():
				w.log.Info().Msg("Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup(ctx)
			}
		}
	}()
	return done
}

func (w *Worker) runCleanup(ctx context.Context) {
	removed, err := w.sweeper.Sweep(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Error cleaning up games")
		return
	}
	if removed > 0 {
		w.log.Debug().Int("removed", removed).Msg("Cleanup pass finished")
	}
}
