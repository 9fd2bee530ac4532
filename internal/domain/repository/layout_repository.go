package repository

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

type LayoutRepository interface {
	Create(ctx context.Context, l *entity.Layout) error
	GetByType(ctx context.Context, t entity.LayoutType) (*entity.Layout, error)
	Update(ctx context.Context, l *entity.Layout) error
}
