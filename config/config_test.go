package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
	t.Setenv("ACTIVATION_SECRET", "s")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 72*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 5*time.Minute, cfg.ActivationTTL)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.DebugMetricsEnabled)
	assert.Equal(t, "0 0 * * *", cfg.NotificationPurgeSchedule)
	assert.Equal(t, 30*24*time.Hour, cfg.NotificationRetention)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_ACCESS_TTL", "10m")
	t.Setenv("COOKIE_SECURE", "notabool")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	assert.Equal(t, 10*time.Minute, cfg.AccessTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestValidateRequiresSecrets(t *testing.T) {
	cfg := &Config{
		AccessTTL:             time.Minute,
		RefreshTTL:            time.Hour,
		ActivationTTL:         time.Minute,
		MailTransport:         "queue",
		NotificationRetention: time.Hour,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
	assert.Contains(t, err.Error(), "ACTIVATION_SECRET")

	cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.ActivationSecret = "a", "r", "s"
	assert.NoError(t, cfg.Validate())

	cfg.MailTransport = "smtp"
	assert.Error(t, cfg.Validate())
}

func TestPostgresDSNEscapesPassword(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p@ss/word", DBHost: "db", DBPort: "5432", DBName: "lms", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/lms?sslmode=disable", cfg.PostgresDSN())
}
