package memory

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type LayoutRepository struct{ db *DB }

func (r *LayoutRepository) Create(_ context.Context, l *entity.Layout) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.layouts[l.Type]; ok {
		return repository.ErrDuplicate
	}
	l.ID = newID()
	l.CreatedAt = r.db.Now()
	l.UpdatedAt = l.CreatedAt
	r.db.layouts[l.Type] = clone(*l)
	return nil
}

func (r *LayoutRepository) GetByType(_ context.Context, t entity.LayoutType) (*entity.Layout, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	l, ok := r.db.layouts[t]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clone(l)
	return &out, nil
}

func (r *LayoutRepository) Update(_ context.Context, l *entity.Layout) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.layouts[l.Type]
	if !ok {
		return repository.ErrNotFound
	}
	l.ID = existing.ID
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = r.db.Now()
	r.db.layouts[l.Type] = clone(*l)
	return nil
}

var _ repository.LayoutRepository = (*LayoutRepository)(nil)
