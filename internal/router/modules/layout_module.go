package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-lms-api/internal/interface/http"
)

type LayoutModule struct {
	Handler *handlers.LayoutHandler
	Guards  Guards
}

func NewLayoutModule(h *handlers.LayoutHandler, g Guards) *LayoutModule {
	return &LayoutModule{Handler: h, Guards: g}
}

func (m *LayoutModule) Register(rg *gin.RouterGroup) {
	rg.GET("/get-layout/:type", m.Handler.Get)
	rg.POST("/create-layout", chain(m.Guards.Admin(), m.Handler.Create)...)
	rg.PUT("/edit-layout", chain(m.Guards.Admin(), m.Handler.Edit)...)
}
