package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/mailer/templates"
)

func TestOrderIncrementsPurchasedOnce(t *testing.T) {
	h := newHarness(t)
	c := h.createCourse(t)
	h.createUser(t, "Ana", "ana@example.com", "secret1")
	ana := h.login(t, "ana@example.com", "secret1")
	_, err := h.courses.List(h.ctx)
	require.NoError(t, err)

	o, err := h.orders.Create(h.ctx, ana, OrderInput{CourseID: c.ID, PaymentInfo: json.RawMessage(`{"id":"pi_1"}`)})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)

	stored, _ := h.db.Courses().GetByID(h.ctx, c.ID)
	assert.Equal(t, 1, stored.Purchased)
	assert.False(t, h.cache.Has(CatalogCacheKey))

	snap, err := h.sessions.Get(h.ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, snap.Courses)

	job, ok := h.outbox.Last()
	require.True(t, ok)
	assert.Equal(t, templates.OrderConfirmation, job.Template)

	// a stale snapshot still cannot buy twice
	_, err = h.orders.Create(h.ctx, ana, OrderInput{CourseID: c.ID})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = h.orders.Create(h.ctx, snap, OrderInput{CourseID: c.ID})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	stored, _ = h.db.Courses().GetByID(h.ctx, c.ID)
	assert.Equal(t, 1, stored.Purchased)

	orders, err := h.orders.List(h.ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	notes, _ := h.notifications.List(h.ctx)
	require.Len(t, notes, 1)
	assert.Equal(t, "New Order", notes[0].Title)
}

func TestOrderUnknownCourse(t *testing.T) {
	h := newHarness(t)
	ana := h.createUser(t, "Ana", "ana@example.com", "secret1")
	_, err := h.orders.Create(h.ctx, ana, OrderInput{CourseID: "missing"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestOrderEmailFailureKeepsOrder(t *testing.T) {
	h := newHarness(t)
	c := h.createCourse(t)
	ana := h.createUser(t, "Ana", "ana@example.com", "secret1")
	h.outbox.Fail = assert.AnError

	o, err := h.orders.Create(h.ctx, ana, OrderInput{CourseID: c.ID})
	assert.True(t, apperror.Is(err, apperror.KindDependency))
	require.NotNil(t, o)

	orders, _ := h.orders.List(h.ctx)
	assert.Len(t, orders, 1)
}
