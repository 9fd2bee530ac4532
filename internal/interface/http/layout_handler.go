package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/application"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

type LayoutHandler struct {
	Svc *application.LayoutService
}

func NewLayoutHandler(svc *application.LayoutService) *LayoutHandler {
	return &LayoutHandler{Svc: svc}
}

// Create POST /create-layout
func (h *LayoutHandler) Create(c *gin.Context) {
	var req application.LayoutInput
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l, "layout created", nil)
}

// Edit PUT /edit-layout
func (h *LayoutHandler) Edit(c *gin.Context) {
	var req application.LayoutInput
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.Svc.Edit(c.Request.Context(), req)
	if err != nil {
		failSaved(c, l, err)
		return
	}
	response.Success(c, http.StatusOK, l, "layout updated", nil)
}

// Get GET /get-layout/:type
func (h *LayoutHandler) Get(c *gin.Context) {
	l, err := h.Svc.Get(c.Request.Context(), c.Param("type"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l, "layout", nil)
}
