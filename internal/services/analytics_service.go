package services

import (
	"context"
	"fmt"

	"github.com/htw-hub/questboard-api/internal/constants"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
)

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	User           models.User
	TotalXP        int64
	TasksCompleted int64
	Rank           int
}

// TaskStats holds the dashboard counters
type TaskStats struct {
	TotalTasks     int64
	CompletedTasks int64
	ActiveTasks    int64
	ActiveMembers  int64
}

// AnalyticsService produces read-only views over tasks and the ledger
type AnalyticsService struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, historyRepo repository.HistoryRepository) *AnalyticsService {
	return &AnalyticsService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
	}
}

// Leaderboard ranks users by XP earned in the ledger. Equal totals share a
// rank and the next distinct total takes the following rank.
func (s *AnalyticsService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 {
		limit = constants.DefaultLeaderboardLimit
	}
	if limit > constants.MaxLeaderboardLimit {
		limit = constants.MaxLeaderboardLimit
	}

	rows, err := s.historyRepo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leaderboard: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard users: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	rank := 0
	var previous int64
	for i, row := range rows {
		if i == 0 || row.TotalXP != previous {
			rank++
			previous = row.TotalXP
		}

		user, ok := byID[row.UserID]
		if !ok {
			user = models.User{ID: row.UserID}
		}

		entries = append(entries, LeaderboardEntry{
			User:           user,
			TotalXP:        row.TotalXP,
			TasksCompleted: row.TasksCompleted,
			Rank:           rank,
		})
	}

	return entries, nil
}

// Stats returns task and member counts
func (s *AnalyticsService) Stats(ctx context.Context) (*TaskStats, error) {
	counts, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	members, err := s.userRepo.CountByRole(ctx, models.RoleTasker)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	stats := &TaskStats{
		CompletedTasks: counts[models.TaskStatusCompleted],
		ActiveTasks:    counts[models.TaskStatusInProgress],
		ActiveMembers:  members,
	}
	for _, n := range counts {
		stats.TotalTasks += n
	}

	return stats, nil
}
