package handler

import (
	"github.com/gin-gonic/gin"

	orgapp "github.com/rentops/backend/internal/application/org"
)

// OrganizationHandler handles the authenticated tenant profile and its
// settings document
type OrganizationHandler struct {
	BaseHandler
	orgService *orgapp.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgService *orgapp.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// SetLocaleRequest represents a request to change currency and timezone
type SetLocaleRequest struct {
	Currency string `json:"currency" binding:"required,len=3"`
	Timezone string `json:"timezone" binding:"required,min=1,max=100"`
}

// Get returns the calling tenant's organization profile
func (h *OrganizationHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.orgService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update changes the organization profile
func (h *OrganizationHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req orgapp.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orgService.Update(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetLocale changes the organization currency and timezone
func (h *OrganizationHandler) SetLocale(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req SetLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.orgService.SetLocale(c.Request.Context(), tenantID, req.Currency, req.Timezone); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Suspend blocks the tenant and evicts it from the directory
func (h *OrganizationHandler) Suspend(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	if err := h.orgService.Suspend(c.Request.Context(), tenantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetSettings returns the tenant settings document
func (h *OrganizationHandler) GetSettings(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.orgService.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateSettings changes the tenant settings document
func (h *OrganizationHandler) UpdateSettings(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req orgapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orgService.UpdateSettings(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers organization routes
func (h *OrganizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	organization := rg.Group("/organization")
	{
		organization.GET("", h.Get)
		organization.PUT("", h.Update)
		organization.PUT("/locale", h.SetLocale)
		organization.POST("/suspend", h.Suspend)
		organization.GET("/settings", h.GetSettings)
		organization.PUT("/settings", h.UpdateSettings)
	}
}
