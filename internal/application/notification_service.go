package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

type NotificationService struct {
	Notifications repo.NotificationRepository
	Retention     time.Duration
	Logger        *logrus.Logger

	Now func() time.Time
}

func NewNotificationService(notifications repo.NotificationRepository, retention time.Duration, logger *logrus.Logger) *NotificationService {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &NotificationService{Notifications: notifications, Retention: retention, Logger: helpers.OrNop(logger), Now: time.Now}
}

func (s *NotificationService) List(ctx context.Context) ([]entity.Notification, error) {
	out, err := s.Notifications.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

// MarkRead flips one notification to read and returns the refreshed list.
func (s *NotificationService) MarkRead(ctx context.Context, id string) ([]entity.Notification, error) {
	if err := s.Notifications.MarkRead(ctx, id); err != nil {
		return nil, notFound(err, "notification not found")
	}
	return s.List(ctx)
}

// PurgeRead deletes read notifications older than the retention window.
func (s *NotificationService) PurgeRead(ctx context.Context) (int64, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	cutoff := now().Add(-s.Retention)
	n, err := s.Notifications.PurgeRead(ctx, cutoff)
	if err != nil {
		s.Logger.WithError(err).Error("notification purge failed")
		return 0, err
	}
	metrics.Add(metricPurgedNotices, n)
	s.Logger.WithFields(logrus.Fields{"purged": n, "cutoff": cutoff.UTC().Format(time.RFC3339)}).Info("read notifications purged")
	return n, nil
}
