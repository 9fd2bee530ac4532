package repository

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

// MutateFunc edits a course loaded under a row lock. Returning an error
// aborts the change.
type MutateFunc func(c *entity.Course) error

type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Course, error)
	List(ctx context.Context) ([]entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	// Mutate runs fn as an atomic read-modify-write and returns the stored result.
	Mutate(ctx context.Context, id string, fn MutateFunc) (*entity.Course, error)
	Delete(ctx context.Context, id string) error
}
