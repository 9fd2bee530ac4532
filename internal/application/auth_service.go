package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-api/config"
	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	repo "github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/apperror"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
	"github.com/oksasatya/go-lms-api/pkg/mailer"
	"github.com/oksasatya/go-lms-api/pkg/mailer/templates"
)

// AuthService owns registration, activation and the token/session lifecycle.
type AuthService struct {
	Users    repo.UserRepository
	Sessions repo.SessionStore
	JWT      *helpers.JWTManager
	Mail     mailer.Dispatcher
	Cfg      *config.Config
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, sessions repo.SessionStore, jwt *helpers.JWTManager, mail mailer.Dispatcher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:    users,
		Sessions: sessions,
		JWT:      jwt,
		Mail:     mail,
		Cfg:      cfg,
		Logger:   helpers.OrNop(logger),
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type ActivateInput struct {
	ActivationToken string `json:"activation_token" binding:"required"`
	ActivationCode  string `json:"activation_code" binding:"required,code"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SocialAuthInput struct {
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar" binding:"omitempty,url"`
}

// Register signs the pending account into an activation token and mails the
// code. Nothing is persisted until Activate.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return "", apperror.Wrap(apperror.KindValidation, "email already exists", ErrEmailTaken)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return "", apperror.Internal(err)
	}

	// the token is only signed, so the password travels as a bcrypt hash
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", apperror.Internal(err)
	}
	code, err := helpers.GenActivationCode()
	if err != nil {
		return "", apperror.Internal(err)
	}
	pending := helpers.PendingRegistration{Name: strings.TrimSpace(in.Name), Email: email, Password: hash}
	token, exp, err := s.JWT.GenerateActivationToken(pending, code)
	if err != nil {
		s.Logger.WithError(err).Error("generate activation token failed")
		return "", apperror.Internal(err)
	}

	job := mailer.EmailJob{
		To:       email,
		Template: templates.Activation,
		Data:     templates.NewActivationData(s.Cfg, pending.Name, email, code, exp),
	}
	if err := s.Mail.Dispatch(ctx, job); err != nil {
		incr(metricEmailFailures)
		s.Logger.WithError(err).WithField("email", email).Warn("activation email dispatch failed")
		return "", apperror.Dependency("could not send activation email", err)
	}
	incr(metricRegistrations)
	return token, nil
}

// Activate persists the pending account when the code matches and the email is still free.
func (s *AuthService) Activate(ctx context.Context, in ActivateInput) (*entity.User, error) {
	claims, err := s.JWT.ParseActivationToken(in.ActivationToken)
	if err != nil {
		if errors.Is(err, helpers.ErrMissingSecret) {
			return nil, apperror.Internal(err)
		}
		return nil, apperror.Wrap(apperror.KindValidation, "invalid or expired activation token", err)
	}
	if claims.ActivationCode != in.ActivationCode {
		return nil, apperror.Validation("invalid activation code")
	}

	u := &entity.User{
		Name:     claims.User.Name,
		Email:    claims.User.Email,
		Password: claims.User.Password,
		Role:     entity.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Wrap(apperror.KindValidation, "email already exists", ErrEmailTaken)
		}
		return nil, apperror.Internal(err)
	}
	incr(metricActivations)
	s.Logger.WithField("user_id", u.ID).Info("user activated")
	return u, nil
}

// Login checks the password and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, TokenPair{}, apperror.Internal(err)
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, in.Password) {
		incr(metricLoginFailures)
		return nil, TokenPair{}, apperror.Wrap(apperror.KindValidation, "invalid email or password", ErrInvalidCredentials)
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	incr(metricLogins)
	return u, pair, nil
}

// IssueTokens signs an access/refresh pair for u and overwrites its session snapshot.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, apperror.Internal(err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, apperror.Internal(err)
	}
	if err := s.Sessions.Set(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("session write failed")
		return TokenPair{}, apperror.Internal(err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates both tokens. It needs a live session, so a logged out
// user cannot refresh with a still-valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	const msg = "could not refresh token"
	if refreshToken == "" {
		return nil, TokenPair{}, apperror.Unauthenticated(msg)
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, apperror.Wrap(apperror.KindAuthentication, msg, err)
	}
	u, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, apperror.Unauthenticated(msg)
		}
		return nil, TokenPair{}, apperror.Internal(err)
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	incr(metricRefreshes)
	return u, pair, nil
}

// Logout removes the session, which revokes every outstanding token of the user.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.Sessions.Delete(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// SocialAuth signs in a user vouched for by an identity provider, creating the
// account on first use.
func (s *AuthService) SocialAuth(ctx context.Context, in SocialAuthInput) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrNotFound):
		u = &entity.User{
			Name:       strings.TrimSpace(in.Name),
			Email:      in.Email,
			Role:       entity.RoleUser,
			IsVerified: true,
		}
		if in.Avatar != "" {
			u.Avatar = &entity.Media{URL: in.Avatar}
		}
		if err := s.Users.Create(ctx, u); err != nil {
			if !errors.Is(err, repo.ErrDuplicate) {
				return nil, TokenPair{}, apperror.Internal(err)
			}
			// lost a race with a concurrent first sign-in
			if u, err = s.Users.GetByEmail(ctx, in.Email); err != nil {
				return nil, TokenPair{}, apperror.Internal(err)
			}
		}
	default:
		return nil, TokenPair{}, apperror.Internal(err)
	}

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	incr(metricLogins)
	return u, pair, nil
}
