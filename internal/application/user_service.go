package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

const avatarFolder = "avatars"

// UserService covers profile edits and admin user management. Every mutation
// rewrites the session snapshot so authorization sees the latest state.
type UserService struct {
	Users    repo.UserRepository
	Sessions repo.SessionStore
	Media    repo.MediaStore
	Index    repo.SearchIndex
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, sessions repo.SessionStore, media repo.MediaStore, search repo.SearchIndex, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Sessions: sessions, Media: media, Index: search, Logger: helpers.OrNop(logger)}
}

type UpdateInfoInput struct {
	Name  string `json:"name" binding:"omitempty,max=100"`
	Email string `json:"email" binding:"omitempty,email"`
}

type UpdatePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

type UpdateAvatarInput struct {
	Avatar string `json:"avatar" binding:"required"`
}

type UpdateRoleInput struct {
	ID   string `json:"id" binding:"required"`
	Role string `json:"role" binding:"required,role"`
}

// GetUserInfo returns the session snapshot, falling back to storage.
func (s *UserService) GetUserInfo(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Sessions.Get(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session read failed")
	}
	u, err = s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return u, nil
}

func (s *UserService) UpdateInfo(ctx context.Context, userID string, in UpdateInfoInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" && email != u.Email {
		u.Email = email
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Wrap(apperror.KindValidation, "email already exists", ErrEmailTaken)
		}
		return nil, notFound(err, "user not found")
	}
	if err := s.syncSession(ctx, u); err != nil {
		return nil, err
	}
	s.indexUser(ctx, u)
	return u, nil
}

// UpdatePassword requires the current password; social accounts have none and are refused.
func (s *UserService) UpdatePassword(ctx context.Context, userID string, in UpdatePasswordInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	if u.Password == "" {
		return nil, apperror.Validation("account has no password, sign in with your provider")
	}
	if !helpers.CompareHashAndPassword(u.Password, in.OldPassword) {
		return nil, apperror.Wrap(apperror.KindValidation, "invalid old password", ErrInvalidCredentials)
	}
	hash, err := helpers.HashPassword(in.NewPassword)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, notFound(err, "user not found")
	}
	if err := s.syncSession(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateAvatar uploads the new picture, stores it and then drops the old
// asset. A failed delete is reported although the new avatar is already saved.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, in UpdateAvatarInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	media, err := uploadMedia(ctx, s.Media, avatarFolder, in.Avatar)
	if err != nil {
		return nil, err
	}
	old := u.Avatar
	u.Avatar = &media
	if err := s.Users.Update(ctx, u); err != nil {
		_ = s.Media.Delete(ctx, media.PublicID)
		return nil, notFound(err, "user not found")
	}
	if err := s.syncSession(ctx, u); err != nil {
		return nil, err
	}
	s.indexUser(ctx, u)
	if err := deleteMedia(ctx, s.Media, old); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("old avatar delete failed")
		return u, err
	}
	return u, nil
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// UpdateRole changes a user's role. A live session is rewritten so the role
// applies without a new login.
func (s *UserService) UpdateRole(ctx context.Context, in UpdateRoleInput) (*entity.User, error) {
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, apperror.Validation("invalid role")
	}
	u, err := s.Users.GetByID(ctx, in.ID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	u.Role = role
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, notFound(err, "user not found")
	}
	if _, err := s.Sessions.Get(ctx, u.ID); err == nil {
		if err := s.syncSession(ctx, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Delete removes the account, its session and its avatar.
func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "user not found")
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return notFound(err, "user not found")
	}
	if err := s.Sessions.Delete(ctx, id); err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("session delete failed")
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("user unindex failed")
		}
	}
	if err := deleteMedia(ctx, s.Media, u.Avatar); err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("avatar delete failed")
		return err
	}
	return nil
}

// Search looks users up by name or email. Without an index it returns nothing.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]entity.User, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.User{}, nil
	}
	ids, err := s.Index.Search(ctx, q, clampSize(size))
	if err != nil {
		return nil, apperror.Dependency("search unavailable", err)
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return orderByIDs(ids, users, func(u entity.User) string { return u.ID }), nil
}

func (s *UserService) syncSession(ctx context.Context, u *entity.User) error {
	if err := s.Sessions.Set(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("session write failed")
		return apperror.Internal(err)
	}
	return nil
}

type userDoc struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// indexUser is best effort; search lagging behind storage is acceptable.
func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	doc := userDoc{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
	if err := s.Index.Index(ctx, u.ID, doc); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("user index failed")
	}
}
