// Package maintenance runs periodic background tasks as Go tickers.
//
// The catch-up sweep fingerprints the record store and purges the query
// cache when the fingerprint moved. It covers NOTIFY events missed while the
// listener was down, and other writers of a shared SQLite file, which has no
// change feed at all.
package maintenance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/albapepper/gvg-tracker/internal/store"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CatchUpInterval time.Duration // Sweep for changes the cache has not seen
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CatchUpInterval: time.Minute,
	}
}

// Purger drops cached query results.
type Purger interface {
	Purge()
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, st store.Store, purger Purger, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started", "catchup", cfg.CatchUpInterval)

	tickers := make([]*time.Ticker, 0, 1)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.CatchUpInterval > 0 {
		sw := NewSweeper(st, purger, logger)
		sw.Sweep(ctx) // baseline
		t := time.NewTicker(cfg.CatchUpInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { sw.Sweep(ctx) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Catch-up sweep
// --------------------------------------------------------------------------

// Sweeper remembers the last store fingerprint it saw.
type Sweeper struct {
	store  store.Store
	purger Purger
	logger *slog.Logger

	mu   sync.Mutex
	last *store.Summary
}

func NewSweeper(st store.Store, purger Purger, logger *slog.Logger) *Sweeper {
	return &Sweeper{store: st, purger: purger, logger: logger}
}

// Sweep reports whether the store changed since the previous sweep, purging
// the cache if so. The first sweep only records a baseline.
func (s *Sweeper) Sweep(ctx context.Context) bool {
	sum, err := s.store.Summary(ctx)
	if err != nil {
		s.logger.Warn("Catch-up sweep: failed to summarize store", "error", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		s.last = &sum
		return false
	}
	if *s.last == sum {
		return false
	}
	s.logger.Info("Catch-up sweep: store changed, purging cache",
		"count", sum.Count, "previous_count", s.last.Count)
	s.last = &sum
	s.purger.Purge()
	return true
}
