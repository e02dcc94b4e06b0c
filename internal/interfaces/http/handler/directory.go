package handler

import (
	"github.com/gin-gonic/gin"

	orgapp "github.com/rentops/backend/internal/application/org"
)

// DirectoryHandler handles the public tenant surface: signing up a new
// organization and resolving a slug to its tenant identity.
type DirectoryHandler struct {
	BaseHandler
	orgService       *orgapp.OrganizationService
	directoryService *orgapp.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler
func NewDirectoryHandler(orgService *orgapp.OrganizationService, directoryService *orgapp.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		orgService:       orgService,
		directoryService: directoryService,
	}
}

// DirectoryEntryResponse is the public projection of an organization.
// Credentials and contact details are never exposed here.
type DirectoryEntryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

// Register signs up a new organization with its owner account
func (h *DirectoryHandler) Register(c *gin.Context) {
	var req orgapp.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orgService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Resolve maps an organization slug to its public identity
func (h *DirectoryHandler) Resolve(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Slug is required")
		return
	}

	organization, err := h.directoryService.Resolve(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DirectoryEntryResponse{
		ID:     organization.ID.String(),
		Name:   organization.Name,
		Slug:   organization.Slug,
		Status: string(organization.Status),
	})
}

// RegisterRoutes registers the public directory routes
func (h *DirectoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/organizations", h.Register)
	rg.GET("/directory/:slug", h.Resolve)
}
