package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orgapp "github.com/rentops/backend/internal/application/org"
	"github.com/rentops/backend/internal/interfaces/http/dto"
)

// UserHandler handles staff account management and the session profile
// endpoint
type UserHandler struct {
	BaseHandler
	userService *orgapp.UserService
	authService *orgapp.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *orgapp.UserService, authService *orgapp.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// AssignRoleRequest represents a request to change a user's role
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=owner manager staff"`
}

// ChangePasswordRequest represents a request to rotate a password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Create adds a staff account to the tenant
func (h *UserHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req orgapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns a page of the tenant's staff accounts
func (h *UserHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.userService.List(c.Request.Context(), tenantID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// AssignRole changes a user's role
func (h *UserHandler) AssignRole(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.AssignRole(c.Request.Context(), tenantID, userID, req.Role); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ChangePassword rotates the calling user's password after checking
// the current one
func (h *UserHandler) ChangePassword(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user context")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), tenantID, userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate disables a staff account
func (h *UserHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), tenantID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Me returns the profile of the authenticated user
func (h *UserHandler) Me(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user context")
		return
	}

	resp, err := h.authService.CurrentUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)

	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.PUT("/:id/role", h.AssignRole)
		users.PUT("/me/password", h.ChangePassword)
		users.POST("/:id/deactivate", h.Deactivate)
	}
}
