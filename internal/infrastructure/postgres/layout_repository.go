package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type LayoutRepository struct {
	pool *pgxpool.Pool
}

func NewLayoutRepository(pool *pgxpool.Pool) *LayoutRepository {
	return &LayoutRepository{pool: pool}
}

func encodeLayout(l *entity.Layout) (faq, cats, banner []byte, err error) {
	if faq, err = jsonArray(l.FAQ); err != nil {
		return
	}
	if cats, err = jsonArray(l.Categories); err != nil {
		return
	}
	if l.Banner != nil {
		banner, err = json.Marshal(l.Banner)
	}
	return
}

func (r *LayoutRepository) Create(ctx context.Context, l *entity.Layout) error {
	faq, cats, banner, err := encodeLayout(l)
	if err != nil {
		return err
	}
	return mapErr(r.pool.QueryRow(ctx, `
		INSERT INTO layouts (type, faq, categories, banner) VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at, updated_at
	`, string(l.Type), faq, cats, banner).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt))
}

func (r *LayoutRepository) GetByType(ctx context.Context, t entity.LayoutType) (*entity.Layout, error) {
	l := &entity.Layout{}
	var typ string
	var faq, cats, banner []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, type, faq, categories, banner, created_at, updated_at
		FROM layouts WHERE type = $1
	`, string(t)).Scan(&l.ID, &typ, &faq, &cats, &banner, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	l.Type = entity.LayoutType(typ)
	if l.FAQ, err = unmarshalArray[entity.FAQItem](faq); err != nil {
		return nil, err
	}
	if l.Categories, err = unmarshalArray[entity.Title](cats); err != nil {
		return nil, err
	}
	if len(banner) > 0 && string(banner) != "null" {
		l.Banner = &entity.Banner{}
		if err := json.Unmarshal(banner, l.Banner); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (r *LayoutRepository) Update(ctx context.Context, l *entity.Layout) error {
	faq, cats, banner, err := encodeLayout(l)
	if err != nil {
		return err
	}
	l.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE layouts SET faq = $1, categories = $2, banner = $3, updated_at = $4 WHERE type = $5
	`, faq, cats, banner, l.UpdatedAt, string(l.Type))
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.LayoutRepository = (*LayoutRepository)(nil)
