package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/application"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// Me GET /user
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	info, err := h.Svc.GetUserInfo(c.Request.Context(), u.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, info, "user", nil)
}

// UpdateInfo PUT /update-user-info
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req application.UpdateInfoInput
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Svc.UpdateInfo(c.Request.Context(), u.ID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, updated, "profile updated", nil)
}

// UpdatePassword PUT /update-user-password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req application.UpdatePasswordInput
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Svc.UpdatePassword(c.Request.Context(), u.ID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, updated, "password updated", nil)
}

// UpdateAvatar PUT /update-user-picture
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req application.UpdateAvatarInput
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Svc.UpdateAvatar(c.Request.Context(), u.ID, req)
	if err != nil {
		failSaved(c, updated, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "avatar updated", nil)
}

// List GET /get-users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", nil)
}

// UpdateRole PUT /update-user-role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req application.UpdateRoleInput
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateRole(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "role updated", nil)
}

// Delete DELETE /delete-user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted successfully", nil)
}

// Search GET /search-users?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.Svc.Search(c.Request.Context(), c.Query("q"), querySize(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", gin.H{"count": len(users)})
}
