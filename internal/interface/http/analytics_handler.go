package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/application"
	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

type AnalyticsHandler struct {
	Svc *application.AnalyticsService
}

func NewAnalyticsHandler(svc *application.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Svc: svc}
}

func (h *AnalyticsHandler) series(name string, fn func(context.Context) ([]entity.MonthlyCount, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		points, err := fn(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, points, name+" analytics", nil)
	}
}

// Users GET /get-users-analytics
func (h *AnalyticsHandler) Users() gin.HandlerFunc { return h.series("users", h.Svc.Users) }

// Courses GET /get-courses-analytics
func (h *AnalyticsHandler) Courses() gin.HandlerFunc { return h.series("courses", h.Svc.Courses) }

// Orders GET /get-orders-analytics
func (h *AnalyticsHandler) Orders() gin.HandlerFunc { return h.series("orders", h.Svc.Orders) }
