package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// table names are whitelisted; never interpolate caller input
var analyticsTables = map[repository.Collection]string{
	repository.CollectionUsers:   "users",
	repository.CollectionCourses: "courses",
	repository.CollectionOrders:  "orders",
}

func (r *AnalyticsRepository) CountByMonth(ctx context.Context, c repository.Collection, since time.Time) ([]entity.MonthBucket, error) {
	table, ok := analyticsTables[c]
	if !ok {
		return nil, fmt.Errorf("analytics: unknown collection %q", c)
	}
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', created_at AT TIME ZONE 'UTC') AS month, count(*)
		FROM `+table+`
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.MonthBucket{}
	for rows.Next() {
		var b entity.MonthBucket
		if err := rows.Scan(&b.Start, &b.Count); err != nil {
			return nil, err
		}
		b.Start = time.Date(b.Start.Year(), b.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
		out = append(out, b)
	}
	return out, rows.Err()
}

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)
