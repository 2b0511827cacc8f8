package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusUnclaimed  TaskStatus = "unclaimed"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusUnclaimed, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition leaves s.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// CanTransitionTo reports whether from -> to is a legal lifecycle step.
func (s TaskStatus) CanTransitionTo(to TaskStatus) bool {
	switch s {
	case TaskStatusUnclaimed:
		return to == TaskStatusInProgress || to == TaskStatusCancelled
	case TaskStatusInProgress:
		return to == TaskStatusCompleted || to == TaskStatusCancelled
	default:
		return false
	}
}

type TaskCategory string

const (
	CategoryMarketing       TaskCategory = "marketing"
	CategoryEventPrep       TaskCategory = "event_prep"
	CategoryContentCreation TaskCategory = "content_creation"
	CategoryDevelopment     TaskCategory = "development"
	CategoryDesign          TaskCategory = "design"
	CategoryCommunity       TaskCategory = "community"
)

var TaskCategories = []TaskCategory{
	CategoryMarketing,
	CategoryEventPrep,
	CategoryContentCreation,
	CategoryDevelopment,
	CategoryDesign,
	CategoryCommunity,
}

func (c TaskCategory) IsValid() bool {
	for _, known := range TaskCategories {
		if c == known {
			return true
		}
	}
	return false
}

type TaskType string

const (
	TypeImageGeneration TaskType = "image_generation"
	TypeVideoCreation   TaskType = "video_creation"
	TypeCoding          TaskType = "coding"
	TypeWriting         TaskType = "writing"
	TypeSocialMedia     TaskType = "social_media"
	TypeEventPlanning   TaskType = "event_planning"
	TypeResearch        TaskType = "research"
)

var TaskTypes = []TaskType{
	TypeImageGeneration,
	TypeVideoCreation,
	TypeCoding,
	TypeWriting,
	TypeSocialMedia,
	TypeEventPlanning,
	TypeResearch,
}

func (t TaskType) IsValid() bool {
	for _, known := range TaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Task is a unit of community work. Reward is fixed at creation; AssignedTo is
// set exactly when Status is in_progress or completed.
type Task struct {
	ID          string       `gorm:"primarykey;type:varchar(36)" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'unclaimed';index" json:"status"`
	Reward      int          `gorm:"not null" json:"reward"`
	Category    TaskCategory `gorm:"type:varchar(50);not null" json:"category"`
	Type        TaskType     `gorm:"type:varchar(50);not null" json:"type"`
	AIOutput    *string      `gorm:"type:text" json:"aiOutput"`
	Iterations  int          `gorm:"not null;default:0" json:"iterations"`
	AssignedTo  *string      `gorm:"type:varchar(36);index" json:"assignedTo"`
	CreatedBy   string       `gorm:"type:varchar(36);not null;index" json:"createdBy"`
	CreatedAt   time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	// Relations
	Creator  User  `gorm:"foreignKey:CreatedBy" json:"-"`
	Assignee *User `gorm:"foreignKey:AssignedTo" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TaskStatusUnclaimed
	}
	return nil
}
