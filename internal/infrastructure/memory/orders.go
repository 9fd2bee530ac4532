package memory

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type OrderRepository struct{ db *DB }

func (r *OrderRepository) Place(_ context.Context, o *entity.Order, n *entity.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[o.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	c, ok := r.db.courses[o.CourseID]
	if !ok {
		return repository.ErrNotFound
	}
	if u.HasCourse(o.CourseID) {
		return repository.ErrDuplicate
	}

	u.Courses = append(append([]string{}, u.Courses...), o.CourseID)
	r.db.users[u.ID] = u
	c.Purchased++
	r.db.courses[c.ID] = c

	o.ID = newID()
	o.CreatedAt = r.db.Now()
	r.db.orders = append(r.db.orders, clone(*o))
	if n != nil {
		r.db.createNotificationLocked(n)
	}
	return nil
}

func (r *OrderRepository) List(_ context.Context) ([]entity.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]entity.Order, 0, len(r.db.orders))
	for i := len(r.db.orders) - 1; i >= 0; i-- {
		out = append(out, clone(r.db.orders[i]))
	}
	return out, nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
