package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-lms-api/internal/interface/http"
)

type AnalyticsModule struct {
	Handler *handlers.AnalyticsHandler
	Guards  Guards
}

func NewAnalyticsModule(h *handlers.AnalyticsHandler, g Guards) *AnalyticsModule {
	return &AnalyticsModule{Handler: h, Guards: g}
}

func (m *AnalyticsModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/")
	admin.Use(m.Guards.Admin()...)
	admin.GET("/get-users-analytics", m.Handler.Users())
	admin.GET("/get-courses-analytics", m.Handler.Courses())
	admin.GET("/get-orders-analytics", m.Handler.Orders())
}
