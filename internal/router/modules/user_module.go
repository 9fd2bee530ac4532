package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-lms-api/internal/interface/http"
	"github.com/oksasatya/go-lms-api/internal/interface/middleware"
)

// UserModule serves the profile endpoints and admin user management.
type UserModule struct {
	Handler *handlers.UserHandler
	Guards  Guards
}

func NewUserModule(h *handlers.UserHandler, g Guards) *UserModule {
	return &UserModule{Handler: h, Guards: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(m.Guards.Auth(), m.Guards.Limit(120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/user", m.Handler.Me)
		auth.PUT("/update-user-info", m.Handler.UpdateInfo)
		auth.PUT("/update-user-password", m.Handler.UpdatePassword)
		auth.PUT("/update-user-picture", m.Handler.UpdateAvatar)
	}

	admin := rg.Group("/")
	admin.Use(m.Guards.Admin()...)
	{
		admin.GET("/get-users", m.Handler.List)
		admin.PUT("/update-user-role", m.Handler.UpdateRole)
		admin.DELETE("/delete-user/:id", m.Handler.Delete)
		admin.GET("/search-users", m.Handler.Search)
	}
}
