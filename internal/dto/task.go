package dto

import (
	"time"

	"github.com/htw-hub/questboard-api/internal/models"
)

// UserSummaryDTO is the display card attached to tasks
type UserSummaryDTO struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// UserDTO represents a user profile in API responses
type UserDTO struct {
	ID                string          `json:"id"`
	Email             *string         `json:"email"`
	FirstName         string          `json:"firstName"`
	LastName          string          `json:"lastName"`
	ProfileImageURL   *string         `json:"profileImageUrl"`
	Role              models.UserRole `json:"role"`
	XP                int             `json:"xp"`
	Skills            []string        `json:"skills"`
	Badges            []string        `json:"badges"`
	ProfileCompletion int             `json:"profileCompletion"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// TaskDTO represents a task enriched with creator and assignee cards
type TaskDTO struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Reward      int                 `json:"reward"`
	Category    models.TaskCategory `json:"category"`
	Type        models.TaskType     `json:"type"`
	AIOutput    *string             `json:"aiOutput"`
	Iterations  int                 `json:"iterations"`
	CreatedBy   UserSummaryDTO      `json:"createdBy"`
	AssignedTo  *UserSummaryDTO     `json:"assignedTo"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// HistoryEntryDTO is one ledger row
type HistoryEntryDTO struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	XPEarned    int       `json:"xpEarned"`
	CompletedAt time.Time `json:"completedAt"`
}

// Conversion functions

// ToUserSummaryDTO converts a User model to its display card
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:     user.ID,
		Name:   user.DisplayName(),
		Avatar: user.ProfileImageURL,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	skills := []string(user.Skills)
	if skills == nil {
		skills = []string{}
	}
	badges := []string(user.Badges)
	if badges == nil {
		badges = []string{}
	}

	return UserDTO{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		ProfileImageURL:   user.ProfileImageURL,
		Role:              user.Role,
		XP:                user.XP,
		Skills:            skills,
		Badges:            badges,
		ProfileCompletion: user.ProfileCompletion,
		CreatedAt:         user.CreatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Reward:      task.Reward,
		Category:    task.Category,
		Type:        task.Type,
		AIOutput:    task.AIOutput,
		Iterations:  task.Iterations,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Creator is always set; fall back to the bare ID when it was not preloaded
	if task.Creator.ID != "" {
		dto.CreatedBy = ToUserSummaryDTO(task.Creator)
	} else {
		dto.CreatedBy = ToUserSummaryDTO(models.User{ID: task.CreatedBy})
	}

	if task.Assignee != nil && task.Assignee.ID != "" {
		assignee := ToUserSummaryDTO(*task.Assignee)
		dto.AssignedTo = &assignee
	} else if task.AssignedTo != nil {
		assignee := ToUserSummaryDTO(models.User{ID: *task.AssignedTo})
		dto.AssignedTo = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToHistoryDTOs converts ledger rows
func ToHistoryDTOs(rows []models.UserTaskHistory) []HistoryEntryDTO {
	items := make([]HistoryEntryDTO, len(rows))
	for i, row := range rows {
		items[i] = HistoryEntryDTO{
			ID:          row.ID,
			TaskID:      row.TaskID,
			XPEarned:    row.XPEarned,
			CompletedAt: row.CompletedAt,
		}
	}
	return items
}
