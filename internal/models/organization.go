package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationSize string

const (
	SizeStartup    OrganizationSize = "startup"
	SizeSmall      OrganizationSize = "small"
	SizeMedium     OrganizationSize = "medium"
	SizeLarge      OrganizationSize = "large"
	SizeEnterprise OrganizationSize = "enterprise"
)

func (s OrganizationSize) IsValid() bool {
	switch s {
	case SizeStartup, SizeSmall, SizeMedium, SizeLarge, SizeEnterprise:
		return true
	default:
		return false
	}
}

type Organization struct {
	ID              string           `gorm:"primarykey;type:varchar(36)" json:"id"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name"`
	Description     *string          `gorm:"type:text" json:"description"`
	Website         *string          `gorm:"type:varchar(255)" json:"website"`
	Location        *string          `gorm:"type:varchar(255)" json:"location"`
	Industry        *string          `gorm:"type:varchar(100)" json:"industry"`
	Size            OrganizationSize `gorm:"type:varchar(20);not null;default:'small'" json:"size"`
	ContactInfo     *string          `gorm:"type:text" json:"contactInfo"`
	Mission         *string          `gorm:"type:text" json:"mission"`
	Goals           *string          `gorm:"type:text" json:"goals"`
	EventsOrganized int              `gorm:"not null;default:0" json:"eventsOrganized"`
	SponsorLevel    string           `gorm:"type:varchar(20);not null;default:'bronze'" json:"sponsorLevel"`
	CreatedBy       string           `gorm:"type:varchar(36);not null;index" json:"createdBy"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`

	// Relations
	Creator User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Size == "" {
		o.Size = SizeSmall
	}
	if o.SponsorLevel == "" {
		o.SponsorLevel = "bronze"
	}
	return nil
}
