package dto

import (
	"time"

	"github.com/htw-hub/questboard-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     *string                 `json:"description"`
	Website         *string                 `json:"website"`
	Location        *string                 `json:"location"`
	Industry        *string                 `json:"industry"`
	Size            models.OrganizationSize `json:"size"`
	ContactInfo     *string                 `json:"contactInfo"`
	Mission         *string                 `json:"mission"`
	Goals           *string                 `json:"goals"`
	EventsOrganized int                     `json:"eventsOrganized"`
	SponsorLevel    string                  `json:"sponsorLevel"`
	CreatedBy       string                  `json:"createdBy"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:              org.ID,
		Name:            org.Name,
		Description:     org.Description,
		Website:         org.Website,
		Location:        org.Location,
		Industry:        org.Industry,
		Size:            org.Size,
		ContactInfo:     org.ContactInfo,
		Mission:         org.Mission,
		Goals:           org.Goals,
		EventsOrganized: org.EventsOrganized,
		SponsorLevel:    org.SponsorLevel,
		CreatedBy:       org.CreatedBy,
		CreatedAt:       org.CreatedAt,
	}
}

// ToOrganizationDTOs converts a slice of organizations
func ToOrganizationDTOs(orgs []models.Organization) []OrganizationDTO {
	items := make([]OrganizationDTO, len(orgs))
	for i, org := range orgs {
		items[i] = ToOrganizationDTO(org)
	}
	return items
}
