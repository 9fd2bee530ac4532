package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-lms-api/internal/interface/http"
)

type OrderModule struct {
	Handler *handlers.OrderHandler
	Guards  Guards
}

func NewOrderModule(h *handlers.OrderHandler, g Guards) *OrderModule {
	return &OrderModule{Handler: h, Guards: g}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	rg.POST("/create-order", m.Guards.Auth(), m.Handler.Create)
	rg.GET("/get-all-orders", chain(m.Guards.Admin(), m.Handler.List)...)
}
