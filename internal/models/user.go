package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOrganizer UserRole = "organizer"
	RoleTasker    UserRole = "tasker"
)

// IsValid reports whether r is a recognized role.
func (r UserRole) IsValid() bool {
	return r == RoleOrganizer || r == RoleTasker
}

type User struct {
	ID                string                      `gorm:"primarykey;type:varchar(36)" json:"id"`
	Email             *string                     `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	FirstName         string                      `gorm:"type:varchar(100)" json:"firstName"`
	LastName          string                      `gorm:"type:varchar(100)" json:"lastName"`
	ProfileImageURL   *string                     `gorm:"type:varchar(500)" json:"profileImageUrl"`
	Role              UserRole                    `gorm:"type:varchar(20);not null;default:'tasker';index" json:"role"`
	XP                int                         `gorm:"not null;default:0" json:"xp"`
	Skills            datatypes.JSONSlice[string] `json:"skills"`
	Badges            datatypes.JSONSlice[string] `json:"badges"`
	ProfileCompletion int                         `gorm:"not null;default:0" json:"profileCompletion"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleTasker
	}
	if u.Skills == nil {
		u.Skills = datatypes.JSONSlice[string]{}
	}
	if u.Badges == nil {
		u.Badges = datatypes.JSONSlice[string]{}
	}
	return nil
}

// DisplayName falls back from full name to email to a placeholder.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Email != nil && *u.Email != "" {
		return *u.Email
	}
	return "Unknown User"
}

// HasBadge reports whether the user already holds badge.
func (u User) HasBadge(badge string) bool {
	for _, b := range u.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
