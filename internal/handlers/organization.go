package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/dto"
	apierrors "github.com/htw-hub/questboard-api/internal/errors"
	"github.com/htw-hub/questboard-api/internal/middleware"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/services"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// ListOrganizations returns every organization
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.orgService.ListOrganizations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTOs(orgs))
}

// CreateOrganization registers an organization owned by the current user
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateOrganizationRequest struct {
		Name            string  `json:"name" binding:"required"`
		Description     *string `json:"description"`
		Website         *string `json:"website"`
		Location        *string `json:"location"`
		Industry        *string `json:"industry"`
		Size            string  `json:"size"`
		ContactInfo     *string `json:"contactInfo"`
		Mission         *string `json:"mission"`
		Goals           *string `json:"goals"`
		EventsOrganized int     `json:"eventsOrganized" binding:"min=0"`
		SponsorLevel    string  `json:"sponsorLevel"`
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), services.CreateOrganizationInput{
		Name:            req.Name,
		Description:     req.Description,
		Website:         req.Website,
		Location:        req.Location,
		Industry:        req.Industry,
		Size:            models.OrganizationSize(req.Size),
		ContactInfo:     req.ContactInfo,
		Mission:         req.Mission,
		Goals:           req.Goals,
		EventsOrganized: req.EventsOrganized,
		SponsorLevel:    req.SponsorLevel,
		CreatorID:       userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org))
}
