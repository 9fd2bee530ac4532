package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

var errAlreadyOwned = errors.New("course already owned")

func (r *OrderRepository) Place(ctx context.Context, o *entity.Order, n *entity.Notification) error {
	if !validID(o.UserID) || !validID(o.CourseID) {
		return repository.ErrNotFound
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `
			INSERT INTO user_courses (user_id, course_id) VALUES ($1, $2)
			ON CONFLICT (user_id, course_id) DO NOTHING
		`, o.UserID, o.CourseID)
		if err != nil {
			return mapErr(err)
		}
		if res.RowsAffected() == 0 {
			return errAlreadyOwned
		}

		res, err = tx.Exec(ctx, `UPDATE courses SET purchased = purchased + 1 WHERE id = $1`, o.CourseID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}

		var payment []byte
		if len(o.PaymentInfo) > 0 {
			payment = o.PaymentInfo
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO orders (user_id, course_id, payment_info) VALUES ($1, $2, $3)
			RETURNING id::text, created_at
		`, o.UserID, o.CourseID, payment).Scan(&o.ID, &o.CreatedAt); err != nil {
			return mapErr(err)
		}

		if n != nil {
			return insertNotification(ctx, tx, n)
		}
		return nil
	})
	if errors.Is(err, errAlreadyOwned) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *OrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_id::text, course_id::text, payment_info, created_at
		FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Order{}
	for rows.Next() {
		var o entity.Order
		var payment []byte
		if err := rows.Scan(&o.ID, &o.UserID, &o.CourseID, &payment, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.PaymentInfo = payment
		out = append(out, o)
	}
	return out, rows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
