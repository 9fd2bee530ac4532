package application

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/mailer/templates"
)

func register(t *testing.T, h *harness) (token, code string) {
	t.Helper()
	token, err := h.auth.Register(h.ctx, RegisterInput{Name: "Ana", Email: "Ana@Example.com", Password: "secret1"})
	require.NoError(t, err)
	job, ok := h.outbox.Last()
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", job.To)
	assert.Equal(t, templates.Activation, job.Template)
	code, _ = job.Data["ActivationCode"].(string)
	require.Len(t, code, 4)
	return token, code
}

func TestRegisterAndActivate(t *testing.T) {
	h := newHarness(t)
	token, code := register(t, h)

	u, err := h.auth.Activate(h.ctx, ActivateInput{ActivationToken: token, ActivationCode: code})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.False(t, u.IsVerified)

	// activation does not open a session
	_, err = h.sessions.Get(h.ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	logged := h.login(t, "ana@example.com", "secret1")
	assert.Equal(t, u.ID, logged.ID)
}

func TestActivateWrongCodeCreatesNothing(t *testing.T) {
	h := newHarness(t)
	token, code := register(t, h)
	wrong := "1000"
	if code == wrong {
		wrong = "1001"
	}

	_, err := h.auth.Activate(h.ctx, ActivateInput{ActivationToken: token, ActivationCode: wrong})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	users, _ := h.db.Users().List(h.ctx)
	assert.Empty(t, users)
}

func TestActivationTokenExpiresAfterFiveMinutes(t *testing.T) {
	h := newHarness(t)
	token, code := register(t, h)

	h.clock.Advance(5*time.Minute + time.Second)
	_, err := h.auth.Activate(h.ctx, ActivateInput{ActivationToken: token, ActivationCode: code})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	users, _ := h.db.Users().List(h.ctx)
	assert.Empty(t, users)
}

func TestActivateRaceOnEmail(t *testing.T) {
	h := newHarness(t)
	token, code := register(t, h)
	h.createUser(t, "Other", "ana@example.com", "secret9")

	_, err := h.auth.Activate(h.ctx, ActivateInput{ActivationToken: token, ActivationCode: code})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	h := newHarness(t)
	h.createUser(t, "Ana", "ana@example.com", "secret1")
	_, err := h.auth.Register(h.ctx, RegisterInput{Name: "Ana", Email: "ANA@example.com", Password: "secret1"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Empty(t, h.outbox.Jobs())
}

func TestRegisterMailFailureIsDependencyError(t *testing.T) {
	h := newHarness(t)
	h.outbox.Fail = errors.New("smtp down")
	token, err := h.auth.Register(h.ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	assert.Empty(t, token)
	assert.True(t, apperror.Is(err, apperror.KindDependency))
}

func TestLoginWritesOneSession(t *testing.T) {
	h := newHarness(t)
	h.createUser(t, "Ana", "ana@example.com", "secret1")

	_, pair, err := h.auth.Login(h.ctx, LoginInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, _, err = h.auth.Login(h.ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, _, err = h.auth.Login(h.ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRefreshRequiresSession(t *testing.T) {
	h := newHarness(t)
	h.createUser(t, "Ana", "ana@example.com", "secret1")
	u, pair, err := h.auth.Login(h.ctx, LoginInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	h.clock.Advance(time.Second)
	_, rotated, err := h.auth.Refresh(h.ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, rotated.AccessToken)

	require.NoError(t, h.auth.Logout(h.ctx, u.ID))
	_, _, err = h.auth.Refresh(h.ctx, rotated.RefreshToken)
	assert.True(t, apperror.Is(err, apperror.KindAuthentication))

	_, _, err = h.auth.Refresh(h.ctx, "garbage")
	assert.True(t, apperror.Is(err, apperror.KindAuthentication))
}

func TestSocialAuthCreatesThenReuses(t *testing.T) {
	h := newHarness(t)
	in := SocialAuthInput{Email: "bo@example.com", Name: "Bo", Avatar: "https://img.test/bo.png"}

	first, _, err := h.auth.SocialAuth(h.ctx, in)
	require.NoError(t, err)
	assert.True(t, first.IsVerified)
	require.NotNil(t, first.Avatar)

	second, _, err := h.auth.SocialAuth(h.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// no password, so password login stays closed
	_, _, err = h.auth.Login(h.ctx, LoginInput{Email: "bo@example.com", Password: ""})
	assert.Error(t, err)
}
