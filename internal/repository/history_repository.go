package repository

import (
	"context"

	"github.com/htw-hub/questboard-api/internal/database"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/utils"
	"gorm.io/gorm"
)

// GormHistoryRepository is a GORM implementation of HistoryRepository
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &GormHistoryRepository{db: db}
}

// ListByUser returns a user's ledger rows, newest first
func (r *GormHistoryRepository) ListByUser(ctx context.Context, userID string, params utils.PaginationParams) ([]models.UserTaskHistory, error) {
	history := []models.UserTaskHistory{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Scopes(database.Paginate(params)).
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// Leaderboard groups the ledger by user. Ties on total XP go to the user who
// reached that total first (earliest latest-completion), then to the lower ID.
func (r *GormHistoryRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	rows := []LeaderboardRow{}
	if err := r.db.WithContext(ctx).
		Model(&models.UserTaskHistory{}).
		Select("user_id, SUM(xp_earned) AS total_xp, COUNT(*) AS tasks_completed").
		Group("user_id").
		Order("total_xp DESC, MAX(completed_at) ASC, user_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// XPTotals sums xp_earned per user
func (r *GormHistoryRepository) XPTotals(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		UserID  string
		TotalXP int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.UserTaskHistory{}).
		Select("user_id, SUM(xp_earned) AS total_xp").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.UserID] = row.TotalXP
	}
	return totals, nil
}
