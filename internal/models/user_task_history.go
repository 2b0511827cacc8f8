package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserTaskHistory is an append-only ledger row written once per completed
// task. The unique index on TaskID keeps a task from paying out twice.
type UserTaskHistory struct {
	ID          string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	TaskID      string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"taskId"`
	XPEarned    int       `gorm:"not null" json:"xpEarned"`
	CompletedAt time.Time `gorm:"not null;index" json:"completedAt"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}

func (UserTaskHistory) TableName() string {
	return "user_task_history"
}

func (h *UserTaskHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CompletedAt.IsZero() {
		h.CompletedAt = time.Now()
	}
	return nil
}
