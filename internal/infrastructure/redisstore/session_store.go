package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

// SessionStore keeps one JSON user snapshot per user id. The TTL matches the
// refresh token lifetime and slides on every write.
type SessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSessionStore(rdb redis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func SessionKey(userID string) string {
	return "user:session:" + userID
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*entity.User, error) {
	var u entity.User
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, SessionKey(userID), &u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *SessionStore) Set(ctx context.Context, u *entity.User) error {
	return helpers.RedisSetJSON(ctx, s.rdb, SessionKey(u.ID), u, s.ttl)
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.rdb, SessionKey(userID))
}

var _ repository.SessionStore = (*SessionStore)(nil)
