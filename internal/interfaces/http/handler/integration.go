package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	importerapp "github.com/rentops/backend/internal/application/importer"
	"github.com/rentops/backend/internal/interfaces/http/dto"
)

// IntegrationHandler handles external catalog connections, field
// mappings and import runs
type IntegrationHandler struct {
	BaseHandler
	connectionService *importerapp.ConnectionService
	mappingService    *importerapp.MappingService
	importService     *importerapp.ImportService
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(
	connectionService *importerapp.ConnectionService,
	mappingService *importerapp.MappingService,
	importService *importerapp.ImportService,
) *IntegrationHandler {
	return &IntegrationHandler{
		connectionService: connectionService,
		mappingService:    mappingService,
		importService:     importService,
	}
}

// Create connects the tenant to an external catalog provider
func (h *IntegrationHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	var req importerapp.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.connectionService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns all integrations of the tenant
func (h *IntegrationHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	resp, err := h.connectionService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces the connection credentials
func (h *IntegrationHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	configID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return
	}

	var req importerapp.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.connectionService.Update(c.Request.Context(), tenantID, configID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Enable turns the integration on
func (h *IntegrationHandler) Enable(c *gin.Context) {
	h.setEnabled(c, true)
}

// Disable turns the integration off
func (h *IntegrationHandler) Disable(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *IntegrationHandler) setEnabled(c *gin.Context, enabled bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	configID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return
	}

	if err := h.connectionService.SetEnabled(c.Request.Context(), tenantID, configID, enabled); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete disconnects the integration and discards its credentials
func (h *IntegrationHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	configID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return
	}

	if err := h.connectionService.Delete(c.Request.Context(), tenantID, configID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Test checks whether the provider answers with the stored credentials
func (h *IntegrationHandler) Test(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	configID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return
	}

	resp, err := h.connectionService.Test(c.Request.Context(), tenantID, configID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpsertMapping creates or replaces a field mapping on the integration
func (h *IntegrationHandler) UpsertMapping(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	configID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return
	}

	var req importerapp.UpsertMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.mappingService.Upsert(c.Request.Context(), tenantID, configID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListMappings returns the field mappings of an integration
func (h *IntegrationHandler) ListMappings(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	configID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return
	}

	resp, err := h.mappingService.List(c.Request.Context(), tenantID, configID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MappableFields lists the vehicle fields a mapping may target
func (h *IntegrationHandler) MappableFields(c *gin.Context) {
	h.Success(c, h.mappingService.MappableFields())
}

// DeleteMapping removes a field mapping
func (h *IntegrationHandler) DeleteMapping(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	mappingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid mapping ID")
		return
	}

	if err := h.mappingService.Delete(c.Request.Context(), tenantID, mappingID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RunImport walks the external catalog and imports it into the fleet
func (h *IntegrationHandler) RunImport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	configID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return
	}

	var req importerapp.RunImportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.importService.Run(c.Request.Context(), tenantID, configID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ResyncItem re-fetches a single catalog item and applies it to the
// fleet
func (h *IntegrationHandler) ResyncItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	configID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return
	}

	externalID := c.Param("external_id")
	if externalID == "" {
		h.BadRequest(c, "External ID is required")
		return
	}

	resp, err := h.importService.ResyncItem(c.Request.Context(), tenantID, configID, externalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetJob returns a single import job with its counters and errors
func (h *IntegrationHandler) GetJob(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant context")
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid import job ID")
		return
	}

	resp, err := h.importService.GetJob(c.Request.Context(), tenantID, jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListJobs returns a page of the tenant's import history
func (h *IntegrationHandler) ListJobs(c *gin.Context) {
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

	page, err := h.importService.ListJobs(c.Request.Context(), tenantID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes registers integration routes
func (h *IntegrationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	integrations := rg.Group("/integrations")
	{
		integrations.POST("", h.Create)
		integrations.GET("", h.List)
		integrations.PUT("/:id", h.Update)
		integrations.POST("/:id/enable", h.Enable)
		integrations.POST("/:id/disable", h.Disable)
		integrations.DELETE("/:id", h.Delete)
		integrations.POST("/:id/test", h.Test)

		integrations.PUT("/:id/mappings", h.UpsertMapping)
		integrations.GET("/:id/mappings", h.ListMappings)

		integrations.POST("/:id/imports", h.RunImport)
		integrations.POST("/:id/items/:external_id/resync", h.ResyncItem)
	}

	rg.GET("/mapping-fields", h.MappableFields)
	rg.DELETE("/mappings/:id", h.DeleteMapping)

	imports := rg.Group("/imports")
	{
		imports.GET("", h.ListJobs)
		imports.GET("/:id", h.GetJob)
	}
}
