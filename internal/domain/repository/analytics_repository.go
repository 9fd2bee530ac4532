package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

// Collection names a table the analytics endpoints count.
type Collection string

const (
	CollectionUsers   Collection = "users"
	CollectionCourses Collection = "courses"
	CollectionOrders  Collection = "orders"
)

type AnalyticsRepository interface {
	// CountByMonth returns non-empty month buckets for rows created at or after since.
	CountByMonth(ctx context.Context, c Collection, since time.Time) ([]entity.MonthBucket, error)
}
