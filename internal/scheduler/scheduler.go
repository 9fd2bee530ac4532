package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

// Purger removes read notifications past their retention.
type Purger interface {
	PurgeRead(ctx context.Context) (int64, error)
}

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	cron    *cron.Cron
	purger  Purger
	logger  *logrus.Logger
	timeout time.Duration
}

func New(purger Purger, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		purger:  purger,
		logger:  helpers.OrNop(logger),
		timeout: time.Minute,
	}
}

// AddNotificationPurge registers the purge job on a standard 5-field cron spec.
func (s *Scheduler) AddNotificationPurge(spec string) error {
	_, err := s.cron.AddFunc(spec, s.PurgeNotifications)
	return err
}

// PurgeNotifications runs one purge pass. Errors are logged; the next run retries.
func (s *Scheduler) PurgeNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	n, err := s.purger.PurgeRead(ctx)
	if err != nil {
		s.logger.WithError(err).Error("notification purge failed")
		return
	}
	s.logger.WithField("deleted", n).Info("notification purge done")
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for running jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}
