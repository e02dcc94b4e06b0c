package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	crmapp "github.com/rentops/backend/internal/application/crm"
	"github.com/rentops/backend/internal/interfaces/http/dto"
)

// CustomerHandler handles customer profile and communication log
// endpoints
type CustomerHandler struct {
	BaseHandler
	customerService      *crmapp.CustomerService
	communicationService *crmapp.CommunicationService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *crmapp.CustomerService, communicationService *crmapp.CommunicationService) *CustomerHandler {
	return &CustomerHandler{
		customerService:      customerService,
		communicationService: communicationService,
	}
}

// Create adds a customer profile
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req crmapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.customerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single customer profile
func (h *CustomerHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.customerService.GetByID(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByCode returns a customer profile by its tenant-scoped code
func (h *CustomerHandler) GetByCode(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	code := c.Param("code")
	resp, err := h.customerService.GetByCode(c.Request.Context(), tenantID, code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a filtered page of customer profiles
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter crmapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.customerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Statistics returns customer counts and aggregate contract value
func (h *CustomerHandler) Statistics(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.customerService.Statistics(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update changes a customer profile
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req crmapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.Update(c.Request.Context(), tenantID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate re-enables a customer profile
func (h *CustomerHandler) Activate(c *gin.Context) {
	h.transition(c, h.customerService.Activate)
}

// Deactivate blocks a customer profile
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.customerService.Deactivate)
}

// Delete removes a customer profile
func (h *CustomerHandler) Delete(c *gin.Context) {
	h.transition(c, h.customerService.Delete)
}

func (h *CustomerHandler) transition(c *gin.Context, op func(ctx context.Context, tenantID, customerID uuid.UUID) error) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := op(c.Request.Context(), tenantID, customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// LogCommunication records a customer touchpoint
func (h *CustomerHandler) LogCommunication(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req crmapp.LogCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.communicationService.Log(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListCommunications returns a page of a customer's communication log
func (h *CustomerHandler) ListCommunications(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.communicationService.ListByCustomer(c.Request.Context(), tenantID, customerID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/summary", h.Statistics)
		customers.GET("/code/:code", h.GetByCode)
		customers.GET("/:id", h.GetByID)
		customers.PUT("/:id", h.Update)
		customers.POST("/:id/activate", h.Activate)
		customers.POST("/:id/deactivate", h.Deactivate)
		customers.DELETE("/:id", h.Delete)
		customers.GET("/:id/communications", h.ListCommunications)
	}

	rg.POST("/communications", h.LogCommunication)
}
