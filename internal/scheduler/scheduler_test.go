package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	calls int
	n     int64
	err   error
}

func (p *fakePurger) PurgeRead(context.Context) (int64, error) {
	p.calls++
	return p.n, p.err
}

func TestPurgeNotificationsRunsOnce(t *testing.T) {
	p := &fakePurger{n: 3}
	s := New(p, nil)
	s.PurgeNotifications()
	assert.Equal(t, 1, p.calls)
}

func TestPurgeErrorIsSwallowed(t *testing.T) {
	p := &fakePurger{err: errors.New("db down")}
	s := New(p, nil)
	assert.NotPanics(t, s.PurgeNotifications)
	assert.Equal(t, 1, p.calls)
}

func TestAddNotificationPurgeValidatesSchedule(t *testing.T) {
	s := New(&fakePurger{}, nil)
	require.NoError(t, s.AddNotificationPurge("0 0 * * *"))
	assert.Error(t, s.AddNotificationPurge("not a schedule"))
}

func TestStartStop(t *testing.T) {
	s := New(&fakePurger{}, nil)
	require.NoError(t, s.AddNotificationPurge("@daily"))
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
