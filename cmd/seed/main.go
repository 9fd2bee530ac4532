package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-lms-api/config"
	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	pginfra "github.com/oksasatya/go-lms-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

// seed creates the first admin account, or promotes an existing one.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	name := os.Getenv("SEED_ADMIN_NAME")
	if name == "" {
		name = "Admin"
	}
	if email == "" || len(password) < 6 {
		logger.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD (min 6 chars) are required")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()
	users := pginfra.NewUserRepository(pool)

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == entity.RoleAdmin {
			logger.WithField("user_id", u.ID).Info("admin already exists")
			return
		}
		u.Role = entity.RoleAdmin
		if err := users.Update(ctx, u); err != nil {
			logger.WithError(err).Fatal("failed to promote user")
		}
		logger.WithField("user_id", u.ID).Info("promoted existing user to admin")
	case errors.Is(err, repository.ErrNotFound):
		hash, err := helpers.HashPassword(password)
		if err != nil {
			logger.WithError(err).Fatal("failed to hash password")
		}
		u = &entity.User{Name: name, Email: email, Password: hash, Role: entity.RoleAdmin, IsVerified: true}
		if err := users.Create(ctx, u); err != nil {
			logger.WithError(err).Fatal("failed to seed admin")
		}
		logger.WithField("user_id", u.ID).Info("seeded admin")
	default:
		logger.WithError(err).Fatal("failed to look up user")
	}
}
