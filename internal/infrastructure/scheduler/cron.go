package scheduler

import (
	"context"
	"time"

	"GlobalPulse/internal/ports"
)

// DailyScheduler is a lightweight placeholder scheduler using time.Ticker.
// The cron expression is kept for a future real cron driver.
type DailyScheduler struct {
	spec string
	stop chan struct{}
}

var _ ports.Scheduler = (*DailyScheduler)(nil)

// NewDailyScheduler builds a scheduler configured via cron expression string.
func NewDailyScheduler(spec string) *DailyScheduler {
	return &DailyScheduler{spec: spec}
}

// Start runs the job immediately, then once per day.
func (c *DailyScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if c.stop != nil {
		return nil
	}

	c.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (c *DailyScheduler) Stop(ctx context.Context) error {
	if c.stop == nil {
		return nil
	}
	close(c.stop)
	c.stop = nil
	return nil
}
