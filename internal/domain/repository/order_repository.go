package repository

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

type OrderRepository interface {
	// Place stores the order, adds the course to the buyer's list, bumps the
	// course purchase counter once and stores n, all or nothing. A buyer who
	// already owns the course gets ErrDuplicate.
	Place(ctx context.Context, o *entity.Order, n *entity.Notification) error
	List(ctx context.Context) ([]entity.Order, error)
}
