package handler

import (
	"github.com/gin-gonic/gin"

	orgapp "github.com/rentops/backend/internal/application/org"
)

// AuthHandler handles login and token refresh. Its routes are public;
// the session endpoint lives on UserHandler behind the auth middleware.
type AuthHandler struct {
	BaseHandler
	authService *orgapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *orgapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user against an organization slug and issues a
// token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req orgapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Refresh exchanges a refresh token for a fresh token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req orgapp.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
}
