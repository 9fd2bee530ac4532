package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type AnalyticsRepository struct{ db *DB }

func (r *AnalyticsRepository) CountByMonth(_ context.Context, c repository.Collection, since time.Time) ([]entity.MonthBucket, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var stamps []time.Time
	switch c {
	case repository.CollectionUsers:
		for _, u := range r.db.users {
			stamps = append(stamps, u.CreatedAt)
		}
	case repository.CollectionCourses:
		for _, co := range r.db.courses {
			stamps = append(stamps, co.CreatedAt)
		}
	case repository.CollectionOrders:
		for _, o := range r.db.orders {
			stamps = append(stamps, o.CreatedAt)
		}
	default:
		return nil, fmt.Errorf("analytics: unknown collection %q", c)
	}

	counts := map[time.Time]int64{}
	for _, ts := range stamps {
		if ts.Before(since) {
			continue
		}
		ts = ts.UTC()
		counts[time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)]++
	}
	out := make([]entity.MonthBucket, 0, len(counts))
	for start, n := range counts {
		out = append(out, entity.MonthBucket{Start: start, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)
