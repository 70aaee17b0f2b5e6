package cronjob

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/robfig/cron/v3"
)

// NightlySpec runs at 12:00 AM every day.
const NightlySpec = "0 0 0 * * *"

// Pruner deletes audit records created before cutoff.
type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Scheduler struct {
	pruner    Pruner
	retention time.Duration
	cron      *cron.Cron
	now       func() time.Time
}

func NewScheduler(pruner Pruner, retentionDays int) *Scheduler {
	return &Scheduler{
		pruner:    pruner,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		cron:      cron.New(cron.WithSeconds()),
		now:       time.Now,
	}
}

// Start initializes cron tasks
func (s *Scheduler) Start() error {
	if s.retention <= 0 {
		log.Info("Audit retention disabled, cron scheduler not started")
		return nil
	}

	if _, err := s.cron.AddFunc(NightlySpec, func() {
		_, _ = s.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	log.Infof("Cron scheduler started (pruning audit older than %s nightly at 12:00AM)", s.retention)
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce prunes records older than the retention window.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.WithError(err).Error("audit retention job failed")
		return 0, err
	}
	log.WithFields(log.Fields{
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("audit retention job completed")
	return n, nil
}
