package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	u.id::text, u.name, u.email, u.password_hash, u.role, u.is_verified,
	u.avatar_public_id, u.avatar_url, u.created_at, u.updated_at,
	COALESCE((SELECT array_agg(uc.course_id::text ORDER BY uc.created_at)
	          FROM user_courses uc WHERE uc.user_id = u.id), '{}')`

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	var role, avatarID, avatarURL string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.IsVerified,
		&avatarID, &avatarURL, &u.CreatedAt, &u.UpdatedAt, &u.Courses); err != nil {
		return nil, mapErr(err)
	}
	u.Role = entity.Role(role)
	if avatarURL != "" {
		u.Avatar = &entity.Media{PublicID: avatarID, URL: avatarURL}
	}
	return u, nil
}

func avatarCols(m *entity.Media) (string, string) {
	if m == nil {
		return "", ""
	}
	return m.PublicID, m.URL
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	avatarID, avatarURL := avatarCols(u.Avatar)
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, is_verified, avatar_public_id, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at, updated_at
	`, u.Name, strings.ToLower(u.Email), u.Password, string(u.Role), u.IsVerified, avatarID, avatarURL)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapErr(err)
	}
	u.Email = strings.ToLower(u.Email)
	u.Courses = []string{}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`, email))
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return []entity.User{}, nil
	}
	return r.query(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ANY($1::text[]::uuid[])`, ids)
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.created_at DESC`)
}

func (r *UserRepository) query(ctx context.Context, sql string, args ...any) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Update writes profile fields. The purchased course list is owned by OrderRepository.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if !validID(u.ID) {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	avatarID, avatarURL := avatarCols(u.Avatar)

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, is_verified = $5,
		    avatar_public_id = $6, avatar_url = $7, updated_at = $8
		WHERE id = $9
	`, u.Name, strings.ToLower(u.Email), u.Password, string(u.Role), u.IsVerified, avatarID, avatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		return mapErr(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
