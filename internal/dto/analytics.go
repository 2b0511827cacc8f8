package dto

import "github.com/htw-hub/questboard-api/internal/services"

// LeaderboardEntryDTO is one ranked leaderboard row
type LeaderboardEntryDTO struct {
	User           UserDTO `json:"user"`
	TotalXP        int64   `json:"totalXp"`
	TasksCompleted int64   `json:"tasksCompleted"`
	Rank           int     `json:"rank"`
}

// StatsDTO holds the dashboard counters
type StatsDTO struct {
	TotalTasks     int64 `json:"totalTasks"`
	CompletedTasks int64 `json:"completedTasks"`
	ActiveTasks    int64 `json:"activeTasks"`
	ActiveMembers  int64 `json:"activeMembers"`
}

// ToLeaderboardDTOs converts ranked entries
func ToLeaderboardDTOs(entries []services.LeaderboardEntry) []LeaderboardEntryDTO {
	items := make([]LeaderboardEntryDTO, len(entries))
	for i, e := range entries {
		items[i] = LeaderboardEntryDTO{
			User:           ToUserDTO(e.User),
			TotalXP:        e.TotalXP,
			TasksCompleted: e.TasksCompleted,
			Rank:           e.Rank,
		}
	}
	return items
}

// ToStatsDTO converts task stats
func ToStatsDTO(stats services.TaskStats) StatsDTO {
	return StatsDTO{
		TotalTasks:     stats.TotalTasks,
		CompletedTasks: stats.CompletedTasks,
		ActiveTasks:    stats.ActiveTasks,
		ActiveMembers:  stats.ActiveMembers,
	}
}
