package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-lms-api/internal/interface/http"
)

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Guards  Guards
}

func NewNotificationModule(h *handlers.NotificationHandler, g Guards) *NotificationModule {
	return &NotificationModule{Handler: h, Guards: g}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/")
	admin.Use(m.Guards.Admin()...)
	admin.GET("/get-all-notifications", m.Handler.List)
	admin.PUT("/update-notifications/:id", m.Handler.MarkRead)
}
