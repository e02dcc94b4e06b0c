package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	crmapp "github.com/rentops/backend/internal/application/crm"
)

// ContractHandler handles rental contract endpoints
type ContractHandler struct {
	BaseHandler
	contractService *crmapp.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *crmapp.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Create drafts a rental contract
func (h *ContractHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req crmapp.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.contractService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single contract
func (h *ContractHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	resp, err := h.contractService.GetByID(c.Request.Context(), tenantID, contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a filtered page of contracts
func (h *ContractHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter crmapp.ContractListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.contractService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Reschedule changes the dates of a draft contract
func (h *ContractHandler) Reschedule(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req crmapp.RescheduleContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.contractService.Reschedule(c.Request.Context(), tenantID, contractID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate starts the rental and marks the vehicle as rented
func (h *ContractHandler) Activate(c *gin.Context) {
	h.transition(c, h.contractService.Activate)
}

// Complete ends the rental and releases the vehicle
func (h *ContractHandler) Complete(c *gin.Context) {
	h.transition(c, h.contractService.Complete)
}

// Cancel aborts the contract
func (h *ContractHandler) Cancel(c *gin.Context) {
	h.transition(c, h.contractService.Cancel)
}

func (h *ContractHandler) transition(c *gin.Context, op func(ctx context.Context, tenantID, contractID uuid.UUID) error) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	if err := op(c.Request.Context(), tenantID, contractID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers contract routes
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.GET("/:id", h.GetByID)
		contracts.PUT("/:id/schedule", h.Reschedule)
		contracts.POST("/:id/activate", h.Activate)
		contracts.POST("/:id/complete", h.Complete)
		contracts.POST("/:id/cancel", h.Cancel)
	}
}
