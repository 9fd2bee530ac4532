package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type CourseRepository struct{ db *DB }

func (r *CourseRepository) Create(_ context.Context, c *entity.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = newID()
	c.CreatedAt = r.db.Now()
	c.UpdatedAt = c.CreatedAt
	r.db.courses[c.ID] = clone(*c)
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id string) (*entity.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clone(c)
	return &out, nil
}

func (r *CourseRepository) GetByIDs(_ context.Context, ids []string) ([]entity.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []entity.Course{}
	for _, id := range ids {
		if c, ok := r.db.courses[id]; ok {
			out = append(out, clone(c))
		}
	}
	return out, nil
}

func (r *CourseRepository) List(_ context.Context) ([]entity.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]entity.Course, 0, len(r.db.courses))
	for _, c := range r.db.courses {
		out = append(out, clone(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *CourseRepository) Update(_ context.Context, c *entity.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.updateLocked(c)
}

func (r *CourseRepository) updateLocked(c *entity.Course) error {
	existing, ok := r.db.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Purchased = existing.Purchased
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.db.Now()
	r.db.courses[c.ID] = clone(*c)
	return nil
}

func (r *CourseRepository) Mutate(_ context.Context, id string, fn repository.MutateFunc) (*entity.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	work := clone(c)
	if err := fn(&work); err != nil {
		return nil, err
	}
	if err := r.updateLocked(&work); err != nil {
		return nil, err
	}
	return &work, nil
}

func (r *CourseRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.courses, id)
	for uid, u := range r.db.users {
		kept := u.Courses[:0]
		for _, cid := range u.Courses {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		u.Courses = kept
		r.db.users[uid] = u
	}
	return nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
