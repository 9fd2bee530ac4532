package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
)

func TestSessionReflectsLatestProfile(t *testing.T) {
	h := newHarness(t)
	h.createUser(t, "Ana", "ana@example.com", "secret1")
	u := h.login(t, "ana@example.com", "secret1")

	_, err := h.users.UpdateInfo(h.ctx, u.ID, UpdateInfoInput{Name: "Ana Maria"})
	require.NoError(t, err)
	_, err = h.users.UpdateAvatar(h.ctx, u.ID, UpdateAvatarInput{Avatar: pngURI})
	require.NoError(t, err)

	snap, err := h.sessions.Get(h.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", snap.Name)
	require.NotNil(t, snap.Avatar)
	assert.Empty(t, snap.Password)

	info, err := h.users.GetUserInfo(h.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Avatar.PublicID, info.Avatar.PublicID)
}

func TestUpdateInfoRejectsTakenEmail(t *testing.T) {
	h := newHarness(t)
	h.createUser(t, "Bo", "bo@example.com", "secret1")
	ana := h.createUser(t, "Ana", "ana@example.com", "secret1")

	_, err := h.users.UpdateInfo(h.ctx, ana.ID, UpdateInfoInput{Email: "BO@example.com"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestUpdatePassword(t *testing.T) {
	h := newHarness(t)
	ana := h.createUser(t, "Ana", "ana@example.com", "secret1")

	_, err := h.users.UpdatePassword(h.ctx, ana.ID, UpdatePasswordInput{OldPassword: "nope", NewPassword: "secret2"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = h.users.UpdatePassword(h.ctx, ana.ID, UpdatePasswordInput{OldPassword: "secret1", NewPassword: "secret2"})
	require.NoError(t, err)

	_, _, err = h.auth.Login(h.ctx, LoginInput{Email: "ana@example.com", Password: "secret1"})
	assert.Error(t, err)
	h.login(t, "ana@example.com", "secret2")
}

func TestUpdateAvatarKeepsOneAsset(t *testing.T) {
	h := newHarness(t)
	ana := h.createUser(t, "Ana", "ana@example.com", "secret1")

	first, err := h.users.UpdateAvatar(h.ctx, ana.ID, UpdateAvatarInput{Avatar: pngURI})
	require.NoError(t, err)
	second, err := h.users.UpdateAvatar(h.ctx, ana.ID, UpdateAvatarInput{Avatar: pngURI})
	require.NoError(t, err)

	assert.False(t, h.media.Has(first.Avatar.PublicID))
	assert.True(t, h.media.Has(second.Avatar.PublicID))
	assert.Equal(t, 1, h.media.Len())

	_, err = h.users.UpdateAvatar(h.ctx, ana.ID, UpdateAvatarInput{Avatar: "not-base64!"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestUpdateAvatarProviderDown(t *testing.T) {
	h := newHarness(t)
	ana := h.createUser(t, "Ana", "ana@example.com", "secret1")
	h.media.FailUpload = assert.AnError

	_, err := h.users.UpdateAvatar(h.ctx, ana.ID, UpdateAvatarInput{Avatar: pngURI})
	assert.True(t, apperror.Is(err, apperror.KindDependency))
}

func TestUpdateRoleRewritesLiveSession(t *testing.T) {
	h := newHarness(t)
	h.createUser(t, "Ana", "ana@example.com", "secret1")
	u := h.login(t, "ana@example.com", "secret1")

	_, err := h.users.UpdateRole(h.ctx, UpdateRoleInput{ID: u.ID, Role: "admin"})
	require.NoError(t, err)
	snap, err := h.sessions.Get(h.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, snap.Role)

	_, err = h.users.UpdateRole(h.ctx, UpdateRoleInput{ID: u.ID, Role: "root"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = h.users.UpdateRole(h.ctx, UpdateRoleInput{ID: "missing", Role: "user"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestDeleteUserRevokesSession(t *testing.T) {
	h := newHarness(t)
	h.createUser(t, "Ana", "ana@example.com", "secret1")
	u := h.login(t, "ana@example.com", "secret1")
	_, err := h.users.UpdateAvatar(h.ctx, u.ID, UpdateAvatarInput{Avatar: pngURI})
	require.NoError(t, err)

	require.NoError(t, h.users.Delete(h.ctx, u.ID))
	_, err = h.sessions.Get(h.ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, h.media.Len())
	assert.True(t, apperror.Is(h.users.Delete(h.ctx, u.ID), apperror.KindNotFound))
}

func TestSearchUsers(t *testing.T) {
	h := newHarness(t)
	ana := h.createUser(t, "Ana", "ana@example.com", "secret1")
	h.createUser(t, "Bo", "bo@example.com", "secret1")
	_, err := h.users.UpdateInfo(h.ctx, ana.ID, UpdateInfoInput{Name: "Ana Lovelace"})
	require.NoError(t, err)

	got, err := h.users.Search(h.ctx, "lovelace", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ana.ID, got[0].ID)

	none, err := h.users.Search(h.ctx, "  ", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchWithoutIndex(t *testing.T) {
	svc := NewUserService(memory.NewDB().Users(), memory.NewSessionStore(), memory.NewMediaStore(), nil, nil)
	got, err := svc.Search(context.Background(), "ana", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
