package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orgapp "github.com/rentops/backend/internal/application/org"
)

// BranchHandler handles rental branch endpoints
type BranchHandler struct {
	BaseHandler
	branchService *orgapp.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *orgapp.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create opens a new branch
func (h *BranchHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req orgapp.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branchService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns all branches of the tenant
func (h *BranchHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.branchService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update changes a branch profile
func (h *BranchHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	var req orgapp.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branchService.Update(c.Request.Context(), tenantID, branchID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate reopens a branch
func (h *BranchHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate closes a branch
func (h *BranchHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *BranchHandler) setActive(c *gin.Context, active bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.branchService.SetActive(c.Request.Context(), tenantID, branchID, active); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes a branch
func (h *BranchHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.branchService.Delete(c.Request.Context(), tenantID, branchID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers branch routes
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	{
		branches.POST("", h.Create)
		branches.GET("", h.List)
		branches.PUT("/:id", h.Update)
		branches.POST("/:id/activate", h.Activate)
		branches.POST("/:id/deactivate", h.Deactivate)
		branches.DELETE("/:id", h.Delete)
	}
}
