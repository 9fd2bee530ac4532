package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-lms-api/internal/interface/http"
	"github.com/oksasatya/go-lms-api/internal/interface/middleware"
)

// AuthModule exposes registration, activation, login and the token lifecycle.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guards  Guards
}

func NewAuthModule(h *handlers.AuthHandler, g Guards) *AuthModule {
	return &AuthModule{Handler: h, Guards: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	credLimiter := m.Guards.Limit(10, time.Minute, middleware.KeyByIPAndPath())
	refreshLimiter := m.Guards.Limit(60, time.Minute, middleware.KeyByIP())

	rg.POST("/registration", credLimiter, m.Handler.Register)
	rg.POST("/activate-user", credLimiter, m.Handler.Activate)
	rg.POST("/login", credLimiter, m.Handler.Login)
	rg.POST("/social-auth", credLimiter, m.Handler.SocialAuth)
	rg.GET("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/logout", m.Guards.Auth(), m.Handler.Logout)
}
