package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/application"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

type NotificationHandler struct {
	Svc *application.NotificationService
}

func NewNotificationHandler(svc *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{Svc: svc}
}

// List GET /get-all-notifications
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list, "notifications", nil)
}

// MarkRead PUT /update-notifications/:id
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	list, err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list, "notification updated", nil)
}
