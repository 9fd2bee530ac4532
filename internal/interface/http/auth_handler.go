package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/application"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies}
}

// Register POST /registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"activationToken": token},
		"please check your email "+req.Email+" to activate your account", nil)
}

// Activate POST /activate-user
func (h *AuthHandler) Activate(c *gin.Context) {
	var req application.ActivateInput
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Activate(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "account activated", nil)
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": u, "accessToken": pair.AccessToken}, "login successful",
		gin.H{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

// Refresh GET /refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshCookie)
	_, pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"accessToken": pair.AccessToken}, "token refreshed",
		gin.H{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), u.ID); err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out successfully", nil)
}

// SocialAuth POST /social-auth
func (h *AuthHandler) SocialAuth(c *gin.Context) {
	var req application.SocialAuthInput
	if !bindJSON(c, &req) {
		return
	}
	u, pair, err := h.Svc.SocialAuth(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": u, "accessToken": pair.AccessToken}, "login successful", nil)
}
