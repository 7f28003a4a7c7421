package worker

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
)

// Purger removes purge-eligible rows and reports how many went away.
type Purger interface {
	PurgeExpiredOrCompleted(ctx context.Context) (int64, error)
}

// RetentionSweeper is a background worker that periodically purges expired
// and completed requests from the ledger. Reads already hide expired rows,
// so the sweeper only reclaims storage; a missed tick loses nothing.
type RetentionSweeper struct {
	ticker  *time.Ticker
	timeout time.Duration
	purger  Purger
	log     zerolog.Logger
	done    chan struct{}
}

// NewRetentionSweeper creates a sweeper that fires every interval. Each pass
// bounds its store wait by timeout so a hung purge cannot stall the loop.
func NewRetentionSweeper(interval, timeout time.Duration, purger Purger, log zerolog.Logger) *RetentionSweeper {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RetentionSweeper{
		ticker:  time.NewTicker(interval),
		timeout: timeout,
		purger:  purger,
		log:     log.With().Str("worker", "retention_sweeper").Logger(),
		done:    make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (w *RetentionSweeper) Start() {
	w.log.Info().Msg("starting retention sweeper")
	go func() {
		for {
			select {
			case <-w.done:
				return
			case <-w.ticker.C:
				w.sweep()
			}
		}
	}()
}

// Stop halts the ticker and terminates the loop.
func (w *RetentionSweeper) Stop() {
	w.log.Info().Msg("stopping retention sweeper")
	w.ticker.Stop()
	close(w.done)
}

// sweep runs one purge pass. Panics are contained so a bad pass cannot take
// down the ticker goroutine.
func (w *RetentionSweeper) sweep() {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered in retention sweeper")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	deleted, err := w.purger.PurgeExpiredOrCompleted(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("retention sweep failed")
		return
	}
	if deleted > 0 {
		w.log.Info().Int64("deleted", deleted).Msg("retention sweep purged requests")
	} else {
		w.log.Debug().Msg("retention sweep found nothing to purge")
	}
}
