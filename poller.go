package duoledger

import (
	"context"
	"log"
	"time"
)

// DefaultPollInterval is the auto-sync cadence.
const DefaultPollInterval = 15 * time.Second

// Poller periodically drives a pull-reconcile-notify pass: once at startup,
// on every interval tick, and immediately on Trigger (the desktop analog of
// a window regaining focus).
//
// Overlap protection lives in DB.Sync: a fire arriving while a pass is in
// flight is a no-op, never queued.
type Poller struct {
	db       *DB
	interval time.Duration
	trigger  chan struct{}
}

// NewPoller creates a poller over the mutation API. A non-positive interval
// falls back to the default.
func NewPoller(db *DB, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		db:       db,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger requests an immediate sync pass. It never blocks: if a trigger is
// already pending, the request folds into it.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run blocks, firing sync passes until the context is done. It returns the
// context's error.
func (p *Poller) Run(ctx context.Context) error {
	p.fire(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.fire(ctx)
		case <-p.trigger:
			p.fire(ctx)
		}
	}
}

func (p *Poller) fire(ctx context.Context) {
	overwritten, err := p.db.Sync(ctx)
	if err != nil {
		log.Printf("sync pass failed: %v", err)
		return
	}
	if overwritten {
		log.Printf("ledger updated from remote")
	}
}
