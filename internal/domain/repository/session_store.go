package repository

import (
	"context"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
)

// SessionStore keeps the authoritative user snapshot per user id. A missing
// entry means the user's tokens are revoked. Get returns ErrNotFound for it.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*entity.User, error)
	Set(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, userID string) error
}
