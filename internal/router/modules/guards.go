package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/internal/interface/middleware"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

// Guards builds the per-route middleware shared by all modules.
type Guards struct {
	Sessions repository.SessionStore
	JWT      *helpers.JWTManager
	// Redis backs the rate limiters; nil disables them.
	Redis redis.Cmdable
	Allow middleware.AllowFunc
}

// Auth requires a valid access token and a live session.
func (g Guards) Auth() gin.HandlerFunc { return middleware.Auth(g.Sessions, g.JWT) }

// Admin requires an authenticated admin.
func (g Guards) Admin() []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Auth(), middleware.AuthorizeRoles(entity.RoleAdmin)}
}

// Limit returns a fixed-window limiter, or a no-op without Redis.
func (g Guards) Limit(max int, window time.Duration, key middleware.KeyFunc) gin.HandlerFunc {
	if g.Redis == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(g.Redis, max, window, key, g.Allow)
}

func chain(mws []gin.HandlerFunc, h ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mws)+len(h))
	return append(append(out, mws...), h...)
}
