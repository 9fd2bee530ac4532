package memory

import (
	"context"
	"time"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type NotificationRepository struct{ db *DB }

func (db *DB) createNotificationLocked(n *entity.Notification) {
	n.ID = newID()
	if n.Status == "" {
		n.Status = entity.NotificationUnread
	}
	n.CreatedAt = db.Now()
	n.UpdatedAt = n.CreatedAt
	db.notifications = append(db.notifications, *n)
}

func (r *NotificationRepository) Create(_ context.Context, n *entity.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.createNotificationLocked(n)
	return nil
}

func (r *NotificationRepository) List(_ context.Context) ([]entity.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]entity.Notification, 0, len(r.db.notifications))
	for i := len(r.db.notifications) - 1; i >= 0; i-- {
		out = append(out, r.db.notifications[i])
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.notifications {
		if r.db.notifications[i].ID == id {
			r.db.notifications[i].Status = entity.NotificationRead
			r.db.notifications[i].UpdatedAt = r.db.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *NotificationRepository) PurgeRead(_ context.Context, cutoff time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	kept := r.db.notifications[:0]
	var purged int64
	for _, n := range r.db.notifications {
		if n.Status == entity.NotificationRead && n.CreatedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, n)
	}
	r.db.notifications = kept
	return purged, nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
