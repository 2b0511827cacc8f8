package repository

import (
	"context"
	"errors"
	"time"

	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/utils"
)

var (
	// ErrStatusConflict is returned when a guarded status update matched no row:
	// the task is missing, in another status, or assigned to someone else.
	ErrStatusConflict = errors.New("task repository: guarded status update matched no rows")
	// ErrAppendHistory is returned when the ledger insert fails inside the completion transaction.
	ErrAppendHistory = errors.New("task repository: append task history failed")
	// ErrCreditUser is returned when the XP increment fails inside the completion transaction.
	ErrCreditUser = errors.New("task repository: credit user xp failed")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id string, preload ...string) (*models.Task, error)

	// List retrieves tasks newest first with creator and assignee preloaded
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Claim moves an unclaimed task to in_progress for userID. It reports
	// false when the task was not unclaimed (or does not exist).
	Claim(ctx context.Context, taskID, userID string, at time.Time) (bool, error)

	// Complete marks an in_progress task assigned to userID as completed,
	// appends the ledger row and credits the user's XP in one transaction.
	// It returns ErrStatusConflict when the guarded update matched nothing.
	Complete(ctx context.Context, taskID, userID string, at time.Time) (*models.UserTaskHistory, error)

	// CountByStatus returns the number of tasks per status
	CountByStatus(ctx context.Context) (map[models.TaskStatus]int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	AssignedTo *string
	CreatedBy  *string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByIDs loads the users with the given IDs, in no particular order
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns every user
	List(ctx context.Context) ([]models.User, error)

	// UpdateProfile persists the user-editable profile fields
	UpdateProfile(ctx context.Context, user *models.User) error

	// SetXP overwrites the cached XP counter (reconciliation only)
	SetXP(ctx context.Context, userID string, xp int) error

	// CountByRole counts users holding role
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

// HistoryRepository defines read access to the task completion ledger
type HistoryRepository interface {
	// ListByUser returns a user's ledger rows, newest first
	ListByUser(ctx context.Context, userID string, params utils.PaginationParams) ([]models.UserTaskHistory, error)

	// Leaderboard aggregates the ledger per user, best first
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)

	// XPTotals sums xp_earned per user
	XPTotals(ctx context.Context) (map[string]int64, error)
}

// LeaderboardRow is one aggregated ledger group
type LeaderboardRow struct {
	UserID         string
	TotalXP        int64
	TasksCompleted int64
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(ctx context.Context, org *models.Organization) error

	// List returns all organizations, oldest first
	List(ctx context.Context) ([]models.Organization, error)
}
