package repository

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return ErrNotFound; Create returns ErrDuplicate for a taken email.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
