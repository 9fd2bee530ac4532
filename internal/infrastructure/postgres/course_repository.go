package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `
	id::text, name, description, price::float8, estimated_price::float8,
	thumbnail_public_id, thumbnail_url, tags, level, demo_url,
	benefits, prerequisites, course_data, reviews, ratings, purchased,
	created_at, updated_at`

func scanCourse(row rowScanner) (*entity.Course, error) {
	c := &entity.Course{}
	var thumbID, thumbURL string
	var benefits, prereqs, data, reviews []byte
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.EstimatedPrice,
		&thumbID, &thumbURL, &c.Tags, &c.Level, &c.DemoURL,
		&benefits, &prereqs, &data, &reviews, &c.Ratings, &c.Purchased,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	if thumbURL != "" {
		c.Thumbnail = &entity.Media{PublicID: thumbID, URL: thumbURL}
	}
	var err error
	if c.Benefits, err = unmarshalArray[entity.Title](benefits); err != nil {
		return nil, fmt.Errorf("course %s benefits: %w", c.ID, err)
	}
	if c.Prerequisites, err = unmarshalArray[entity.Title](prereqs); err != nil {
		return nil, fmt.Errorf("course %s prerequisites: %w", c.ID, err)
	}
	if c.CourseData, err = unmarshalArray[entity.Section](data); err != nil {
		return nil, fmt.Errorf("course %s course_data: %w", c.ID, err)
	}
	if c.Reviews, err = unmarshalArray[entity.Review](reviews); err != nil {
		return nil, fmt.Errorf("course %s reviews: %w", c.ID, err)
	}
	return c, nil
}

type courseDocs struct {
	benefits, prereqs, data, reviews []byte
}

func encodeCourse(c *entity.Course) (courseDocs, error) {
	var d courseDocs
	var err error
	if d.benefits, err = jsonArray(c.Benefits); err != nil {
		return d, err
	}
	if d.prereqs, err = jsonArray(c.Prerequisites); err != nil {
		return d, err
	}
	if d.data, err = jsonArray(c.CourseData); err != nil {
		return d, err
	}
	if d.reviews, err = jsonArray(c.Reviews); err != nil {
		return d, err
	}
	return d, nil
}

func thumbCols(m *entity.Media) (string, string) { return avatarCols(m) }

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	d, err := encodeCourse(c)
	if err != nil {
		return err
	}
	thumbID, thumbURL := thumbCols(c.Thumbnail)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (name, description, price, estimated_price, thumbnail_public_id, thumbnail_url,
		                     tags, level, demo_url, benefits, prerequisites, course_data, reviews, ratings, purchased)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id::text, created_at, updated_at
	`, c.Name, c.Description, c.Price, c.EstimatedPrice, thumbID, thumbURL,
		c.Tags, c.Level, c.DemoURL, d.benefits, d.prereqs, d.data, d.reviews, c.Ratings, c.Purchased)
	return mapErr(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

func (r *CourseRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Course, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return []entity.Course{}, nil
	}
	return r.query(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ANY($1::text[]::uuid[])`, ids)
}

func (r *CourseRepository) List(ctx context.Context) ([]entity.Course, error) {
	return r.query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC`)
}

func (r *CourseRepository) query(ctx context.Context, sql string, args ...any) ([]entity.Course, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update replaces everything but the purchase counter, which only orders change.
func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	if !validID(c.ID) {
		return repository.ErrNotFound
	}
	return update(ctx, r.pool, c)
}

func update(ctx context.Context, db dbtx, c *entity.Course) error {
	d, err := encodeCourse(c)
	if err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	thumbID, thumbURL := thumbCols(c.Thumbnail)
	res, err := db.Exec(ctx, `
		UPDATE courses
		SET name = $1, description = $2, price = $3, estimated_price = $4,
		    thumbnail_public_id = $5, thumbnail_url = $6, tags = $7, level = $8, demo_url = $9,
		    benefits = $10, prerequisites = $11, course_data = $12, reviews = $13, ratings = $14,
		    updated_at = $15
		WHERE id = $16
	`, c.Name, c.Description, c.Price, c.EstimatedPrice, thumbID, thumbURL, c.Tags, c.Level, c.DemoURL,
		d.benefits, d.prereqs, d.data, d.reviews, c.Ratings, c.UpdatedAt, c.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Mutate locks the row for the duration of fn so concurrent question, answer
// and review appends do not overwrite each other.
func (r *CourseRepository) Mutate(ctx context.Context, id string, fn repository.MutateFunc) (*entity.Course, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	var out *entity.Course
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		c, err := scanCourse(tx.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := update(ctx, tx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
