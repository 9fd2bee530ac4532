package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-lms-api/internal/interface/http"
	"github.com/oksasatya/go-lms-api/internal/interface/middleware"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	Guards  Guards
}

func NewCourseModule(h *handlers.CourseHandler, g Guards) *CourseModule {
	return &CourseModule{Handler: h, Guards: g}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	public := m.Guards.Limit(300, time.Minute, middleware.KeyByIP())
	rg.GET("/get-course/:id", public, m.Handler.Get)
	rg.GET("/get-courses", public, m.Handler.List)
	rg.GET("/search-courses", public, m.Handler.Search)

	auth := m.Guards.Auth()
	rg.GET("/get-course-content/:id", auth, m.Handler.Content)
	rg.PUT("/add-question", auth, m.Handler.AddQuestion)
	rg.PUT("/add-answer", auth, m.Handler.AddAnswer)
	rg.PUT("/add-review/:id", auth, m.Handler.AddReview)

	admin := m.Guards.Admin()
	rg.POST("/create-course", chain(admin, m.Handler.Create)...)
	rg.PUT("/edit-course/:id", chain(admin, m.Handler.Edit)...)
	rg.PUT("/add-reply", chain(admin, m.Handler.AddReply)...)
	rg.GET("/get-all-courses", chain(admin, m.Handler.ListAll)...)
	rg.DELETE("/delete-course/:id", chain(admin, m.Handler.Delete)...)
}
