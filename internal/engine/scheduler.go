package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher reloads the catalog.
type Refresher interface {
	Refresh(ctx context.Context) (*Snapshot, error)
}

// Scheduler periodically refreshes the catalog snapshot.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
	log       *slog.Logger
}

// NewScheduler creates a Scheduler that calls Refresh every interval. Each
// run is bounded by the interval itself.
func NewScheduler(r Refresher, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive (got %s)", interval)
	}
	if log == nil {
		log = slog.Default()
	}
	c := cron.New()

	s := &Scheduler{
		cron:      c,
		refresher: r,
		timeout:   interval,
		log:       log,
	}

	if _, err := c.AddFunc(
		"@every "+interval.String(),
		s.runRefresh,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.log.Info("scheduled catalog refresh starting")
	snap, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.log.Error("scheduled catalog refresh failed", "error", err)
		return
	}
	s.log.Info("scheduled catalog refresh finished",
		"snapshot", snap.ID,
		"listings", len(snap.Listings()),
	)
}
