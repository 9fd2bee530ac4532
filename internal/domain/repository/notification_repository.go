package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
	// PurgeRead deletes read notifications created before cutoff.
	PurgeRead(ctx context.Context, cutoff time.Time) (int64, error)
}
