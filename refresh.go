package watchlist

import (
	"context"
	"time"

	"github.com/etnz/watchlist/logging"
	"go.uber.org/zap"
)

// DefaultInterval is the default time between two refresh cycles.
const DefaultInterval = 3 * time.Second

// Refresher runs fetch cycles periodically.
type Refresher struct {
	Fetcher  Fetcher
	Interval time.Duration
	// Entries returns the entries to fetch at each cycle, so that edits made
	// between cycles are picked up.
	Entries func() []Entry
}

// Run runs a cycle immediately, then one per interval, until ctx is done.
// Every outcome is passed to deliver, in order. Cycles never overlap: a slow
// fetch delays the next tick.
//
// Run returns the context error.
func (r *Refresher) Run(ctx context.Context, deliver func(*Snapshot, error)) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		s, err := Fetch(ctx, r.Fetcher, r.Entries())
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			logging.L().Debug("refresh failed", zap.Error(err))
		}
		deliver(s, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
