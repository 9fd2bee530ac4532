package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type UserRepository struct{ db *DB }

// cloneUser keeps the password hash, which JSON cloning would drop.
func cloneUser(u entity.User) entity.User {
	out := clone(u)
	out.Password = u.Password
	if out.Courses == nil {
		out.Courses = []string{}
	}
	return out
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	email := strings.ToLower(u.Email)
	for _, existing := range r.db.users {
		if existing.Email == email {
			return repository.ErrDuplicate
		}
	}
	u.ID = newID()
	u.Email = email
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	u.CreatedAt = r.db.Now()
	u.UpdatedAt = u.CreatedAt
	u.Courses = []string{}
	r.db.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range r.db.users {
		if u.Email == email {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []string) ([]entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []entity.User{}
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	email := strings.ToLower(u.Email)
	for id, other := range r.db.users {
		if id != u.ID && other.Email == email {
			return repository.ErrDuplicate
		}
	}
	u.Email = email
	u.UpdatedAt = r.db.Now()
	stored := cloneUser(*u)
	// the purchased list is owned by order placement
	stored.Courses = slices.Clone(existing.Courses)
	stored.CreatedAt = existing.CreatedAt
	r.db.users[u.ID] = stored
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
