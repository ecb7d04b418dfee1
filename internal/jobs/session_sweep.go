package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper is a token tier that keeps expired entries until swept.
type Sweeper interface {
	Sweep() int
}

// StartSessionSweepJob removes expired entries from the in-process token
// tiers on schedule until ctx is cancelled. An empty schedule disables it.
func StartSessionSweepJob(ctx context.Context, schedule string, log logrus.FieldLogger, tiers ...Sweeper) (*cron.Cron, error) {
	if schedule == "" || len(tiers) == 0 {
		log.Info("session sweep job disabled")
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { SweepSessions(log, tiers...) }); err != nil {
		return nil, err
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}

// SweepSessions runs one sweep pass and returns the number of removed
// entries.
func SweepSessions(log logrus.FieldLogger, tiers ...Sweeper) int {
	removed := 0
	for _, tier := range tiers {
		removed += tier.Sweep()
	}
	if removed > 0 {
		log.WithField("removed", removed).Info("session sweep removed expired entries")
	}
	return removed
}
