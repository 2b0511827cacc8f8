package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
)

var (
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
	ErrInvalidOrganizationSize = errors.New("organization size is not recognized")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name            string
	Description     *string
	Website         *string
	Location        *string
	Industry        *string
	Size            models.OrganizationSize
	ContactInfo     *string
	Mission         *string
	Goals           *string
	EventsOrganized int
	SponsorLevel    string
	CreatorID       string
}

// CreateOrganization records a new organization owned by the creator.
func (s *OrganizationService) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidOrganizationName
	}
	if input.Size != "" && !input.Size.IsValid() {
		return nil, ErrInvalidOrganizationSize
	}

	org := &models.Organization{
		Name:            name,
		Description:     input.Description,
		Website:         input.Website,
		Location:        input.Location,
		Industry:        input.Industry,
		Size:            input.Size,
		ContactInfo:     input.ContactInfo,
		Mission:         input.Mission,
		Goals:           input.Goals,
		EventsOrganized: input.EventsOrganized,
		SponsorLevel:    input.SponsorLevel,
		CreatedBy:       input.CreatorID,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// ListOrganizations returns every organization.
func (s *OrganizationService) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}
