package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/application"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

type OrderHandler struct {
	Svc *application.OrderService
}

func NewOrderHandler(svc *application.OrderService) *OrderHandler {
	return &OrderHandler{Svc: svc}
}

// Create POST /create-order
func (h *OrderHandler) Create(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req application.OrderInput
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.Svc.Create(c.Request.Context(), u, req)
	if err != nil {
		failSaved(c, o, err)
		return
	}
	response.Success(c, http.StatusCreated, o, "order placed", nil)
}

// List GET /get-all-orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}
