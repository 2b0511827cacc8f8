package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/htw-hub/questboard-api/internal/database"
	"github.com/htw-hub/questboard-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Creator", "Assignee").Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks newest first with creator and assignee preloaded
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.AssignedTo != nil {
		query = query.Where("tasks.assigned_to = ?", *filter.AssignedTo)
	}
	if filter.CreatedBy != nil {
		query = query.Where("tasks.created_by = ?", *filter.CreatedBy)
	}

	tasks := []models.Task{}
	if err := query.
		Scopes(database.WithTaskPeople).
		Order("tasks.created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Claim moves an unclaimed task to in_progress. The status predicate makes
// the write a compare-and-swap: a second claimer matches zero rows.
func (r *GormTaskRepository) Claim(ctx context.Context, taskID, userID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, models.TaskStatusUnclaimed).
		Updates(map[string]interface{}{
			"status":      models.TaskStatusInProgress,
			"assigned_to": userID,
			"updated_at":  at,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Complete flips the task to completed, appends the ledger row, credits XP and
// awards milestone badges atomically. Any failure rolls back every write.
func (r *GormTaskRepository) Complete(ctx context.Context, taskID, userID string, at time.Time) (*models.UserTaskHistory, error) {
	var entry *models.UserTaskHistory

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Task{}).
			Where("id = ? AND status = ? AND assigned_to = ?", taskID, models.TaskStatusInProgress, userID).
			Updates(map[string]interface{}{
				"status":     models.TaskStatusCompleted,
				"updated_at": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStatusConflict
		}

		var task models.Task
		if err := tx.Select("id", "reward").First(&task, "id = ?", taskID).Error; err != nil {
			return err
		}

		entry = &models.UserTaskHistory{
			UserID:      userID,
			TaskID:      taskID,
			XPEarned:    task.Reward,
			CompletedAt: at,
		}
		if err := tx.Omit("User", "Task").Create(entry).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrAppendHistory, err)
		}

		result = tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"xp":         gorm.Expr("xp + ?", task.Reward),
				"updated_at": at,
			})
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrCreditUser, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: user %s not found", ErrCreditUser, userID)
		}

		return awardBadges(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// awardBadges grants any milestone badges the user now qualifies for.
func awardBadges(tx *gorm.DB, userID string) error {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to reload user: %w", err)
	}

	var completions int64
	if err := tx.Model(&models.UserTaskHistory{}).Where("user_id = ?", userID).Count(&completions).Error; err != nil {
		return fmt.Errorf("failed to count completions: %w", err)
	}

	earned := models.EarnedBadges(user, completions)
	if len(earned) == 0 {
		return nil
	}

	badges := append(datatypes.JSONSlice[string]{}, user.Badges...)
	badges = append(badges, earned...)

	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("badges", badges).Error
}

// CountByStatus returns the number of tasks per status
func (r *GormTaskRepository) CountByStatus(ctx context.Context) (map[models.TaskStatus]int64, error) {
	var rows []struct {
		Status models.TaskStatus
		Count  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
