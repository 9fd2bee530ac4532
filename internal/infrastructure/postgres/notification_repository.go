package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func insertNotification(ctx context.Context, db dbtx, n *entity.Notification) error {
	if n.Status == "" {
		n.Status = entity.NotificationUnread
	}
	var userID *string
	if validID(n.UserID) {
		userID = &n.UserID
	}
	return mapErr(db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, message, status) VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at
	`, userID, n.Title, n.Message, string(n.Status)).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt))
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return insertNotification(ctx, r.pool, n)
}

func (r *NotificationRepository) List(ctx context.Context) ([]entity.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, COALESCE(user_id::text, ''), title, message, status, created_at, updated_at
		FROM notifications ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		var status string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &status, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.Status = entity.NotificationStatus(status)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `UPDATE notifications SET status = 'read', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) PurgeRead(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE status = 'read' AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
