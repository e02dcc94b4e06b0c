package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	fleetapp "github.com/rentops/backend/internal/application/fleet"
)

// VehicleHandler handles fleet vehicle endpoints
type VehicleHandler struct {
	BaseHandler
	vehicleService *fleetapp.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService *fleetapp.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// SetVehicleStatusRequest represents a request to move a vehicle
// through its lifecycle
type SetVehicleStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available unavailable rented maintenance"`
}

// SetVehicleListingRequest represents a request to change a vehicle's
// catalog visibility
type SetVehicleListingRequest struct {
	Listing string `json:"listing" binding:"required,oneof=active inactive"`
}

// Create adds a vehicle to the fleet
func (h *VehicleHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req fleetapp.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.vehicleService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a single vehicle
func (h *VehicleHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	resp, err := h.vehicleService.GetByID(c.Request.Context(), tenantID, vehicleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a filtered page of vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var filter fleetapp.VehicleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.vehicleService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update changes a vehicle profile
func (h *VehicleHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var req fleetapp.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.vehicleService.Update(c.Request.Context(), tenantID, vehicleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetStatus moves a vehicle through its lifecycle
func (h *VehicleHandler) SetStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var req SetVehicleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.vehicleService.SetStatus(c.Request.Context(), tenantID, vehicleID, req.Status); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetListing changes a vehicle's catalog visibility
func (h *VehicleHandler) SetListing(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var req SetVehicleListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.vehicleService.SetListing(c.Request.Context(), tenantID, vehicleID, req.Listing); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes a vehicle from the fleet
func (h *VehicleHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), tenantID, vehicleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers vehicle routes
func (h *VehicleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.Create)
		vehicles.GET("", h.List)
		vehicles.GET("/:id", h.GetByID)
		vehicles.PUT("/:id", h.Update)
		vehicles.PUT("/:id/status", h.SetStatus)
		vehicles.PUT("/:id/listing", h.SetListing)
		vehicles.DELETE("/:id", h.Delete)
	}
}
