package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
)

const (
	seriesMonths = 12
	monthLabel   = "Jan 2006"
)

type AnalyticsService struct {
	Repo repo.AnalyticsRepository
	Now  func() time.Time
}

func NewAnalyticsService(r repo.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{Repo: r, Now: time.Now}
}

func (s *AnalyticsService) Users(ctx context.Context) ([]entity.MonthlyCount, error) {
	return s.series(ctx, repo.CollectionUsers)
}

func (s *AnalyticsService) Courses(ctx context.Context) ([]entity.MonthlyCount, error) {
	return s.series(ctx, repo.CollectionCourses)
}

func (s *AnalyticsService) Orders(ctx context.Context) ([]entity.MonthlyCount, error) {
	return s.series(ctx, repo.CollectionOrders)
}

func (s *AnalyticsService) series(ctx context.Context, c repo.Collection) ([]entity.MonthlyCount, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	buckets, err := s.Repo.CountByMonth(ctx, c, SeriesStart(now))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return BuildMonthlySeries(now, buckets), nil
}

// SeriesStart is the first instant of the oldest month in the series ending at now.
func SeriesStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-(seriesMonths-1), 1, 0, 0, 0, 0, time.UTC)
}

// BuildMonthlySeries lays buckets onto the twelve calendar months ending with
// the month of now, oldest first. Months without a bucket count zero and
// buckets outside the window are ignored.
func BuildMonthlySeries(now time.Time, buckets []entity.MonthBucket) []entity.MonthlyCount {
	start := SeriesStart(now)
	counts := make(map[time.Time]int64, len(buckets))
	for _, b := range buckets {
		t := b.Start.UTC()
		counts[time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)] += b.Count
	}
	out := make([]entity.MonthlyCount, seriesMonths)
	for i := range out {
		m := start.AddDate(0, i, 0)
		out[i] = entity.MonthlyCount{Month: m.Format(monthLabel), Count: counts[m]}
	}
	return out
}
