package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestSessionStoreLifecycle(t *testing.T) {
	mr, rdb := newRedis(t)
	store := NewSessionStore(rdb, 72*time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	u := &entity.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Password: "hash", Role: entity.RoleUser, Courses: []string{"c1"}}
	require.NoError(t, store.Set(ctx, u))
	assert.Equal(t, 72*time.Hour, mr.TTL(SessionKey("u1")))

	raw, err := mr.Get(SessionKey("u1"))
	require.NoError(t, err)
	assert.NotContains(t, raw, "hash")

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, []string{"c1"}, got.Courses)
	assert.Empty(t, got.Password)

	// overwrite, single key per user
	u.Name = "Ana Maria"
	require.NoError(t, store.Set(ctx, u))
	assert.Len(t, mr.Keys(), 1)
	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)

	require.NoError(t, store.Delete(ctx, "u1"))
	_, err = store.Get(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionExpires(t *testing.T) {
	mr, rdb := newRedis(t)
	store := NewSessionStore(rdb, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &entity.User{ID: "u1"}))
	mr.FastForward(time.Hour + time.Second)
	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCache(t *testing.T) {
	mr, rdb := newRedis(t)
	cache := NewCache(rdb)
	ctx := context.Background()

	var courses []entity.Course
	hit, err := cache.Get(ctx, "allCourses", &courses)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "allCourses", []entity.Course{{ID: "c1", Name: "Go"}}, time.Minute))
	assert.True(t, mr.Exists("cache:allCourses"))

	hit, err = cache.Get(ctx, "allCourses", &courses)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go", courses[0].Name)

	require.NoError(t, cache.Delete(ctx, "allCourses", "course:c1"))
	assert.False(t, mr.Exists("cache:allCourses"))
}
