package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/htw-hub/questboard-api/internal/constants"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidTransition = errors.New("invalid task status transition")
	ErrNotTaskAssignee   = errors.New("only the assignee can complete this task")
	ErrNotOrganizer      = errors.New("only organizers can create tasks")

	// ErrTaskNotClaimable is returned when a claim targets a task that is no longer unclaimed.
	ErrTaskNotClaimable = fmt.Errorf("%w: task has already been claimed", ErrInvalidTransition)
	// ErrTaskNotCompletable is returned when a completion targets a task that is not in progress.
	ErrTaskNotCompletable = fmt.Errorf("%w: task is not in progress", ErrInvalidTransition)
)

// ValidationError carries per-field messages for rejected input
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// TaskService enforces the task state machine and the one-time XP award
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Reward      int
	Category    models.TaskCategory
	Type        models.TaskType
	CreatorID   string
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status     *models.TaskStatus
	AssignedTo *string
}

// Validate checks the task fields against the creation rules
func (in CreateTaskInput) Validate() error {
	verr := &ValidationError{}

	if len([]rune(strings.TrimSpace(in.Title))) < constants.MinTaskTitleLength {
		verr.add("title", fmt.Sprintf("must be at least %d characters", constants.MinTaskTitleLength))
	}
	if len([]rune(strings.TrimSpace(in.Description))) < constants.MinTaskDescriptionLength {
		verr.add("description", fmt.Sprintf("must be at least %d characters", constants.MinTaskDescriptionLength))
	}
	if in.Reward <= 0 {
		verr.add("reward", "must be greater than 0")
	}
	if !in.Category.IsValid() {
		verr.add("category", "must be one of the supported categories")
	}
	if !in.Type.IsValid() {
		verr.add("type", "must be one of the supported task types")
	}

	return verr.orNil()
}

// CreateTask inserts a new unclaimed task on behalf of an organizer
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	creator, err := s.userRepo.FindByID(ctx, input.CreatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find creator: %w", err)
	}
	if creator.Role != models.RoleOrganizer {
		return nil, ErrNotOrganizer
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      models.TaskStatusUnclaimed,
		Reward:      input.Reward,
		Category:    input.Category,
		Type:        input.Type,
		CreatedBy:   creator.ID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(ctx, task.ID)
}

// ListTasks returns tasks newest first with creator and assignee loaded
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{
		Status:     input.Status,
		AssignedTo: input.AssignedTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksByAssignee returns the tasks currently or previously assigned to userID
func (s *TaskService) ListTasksByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	return s.ListTasks(ctx, ListTasksInput{AssignedTo: &userID})
}

// GetTask returns a task with creator and assignee loaded
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, "Creator", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ClaimTask assigns an unclaimed task to userID
func (s *TaskService) ClaimTask(ctx context.Context, taskID, userID string) (*models.Task, error) {
	claimed, err := s.taskRepo.Claim(ctx, taskID, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	if !claimed {
		task, err := s.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if !task.Status.CanTransitionTo(models.TaskStatusInProgress) {
			return nil, ErrTaskNotClaimable
		}
		// The row was unclaimed at read time but lost the guarded update.
		log.Printf("claim of task %s by user %s lost to a concurrent update", taskID, userID)
		return nil, ErrTaskNotClaimable
	}

	return s.GetTask(ctx, taskID)
}

// CompleteTask marks the caller's in-progress task completed and awards its XP
func (s *TaskService) CompleteTask(ctx context.Context, taskID, userID string) (*models.Task, error) {
	_, err := s.taskRepo.Complete(ctx, taskID, userID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, s.diagnoseCompletion(ctx, taskID, userID)
		}
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return s.GetTask(ctx, taskID)
}

// diagnoseCompletion explains why the guarded completion matched no row.
func (s *TaskService) diagnoseCompletion(ctx context.Context, taskID, userID string) error {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	if task.AssignedTo == nil || *task.AssignedTo != userID {
		return ErrNotTaskAssignee
	}

	log.Printf("possible duplicate completion: task %s by user %s (status %s)", taskID, userID, task.Status)
	return ErrTaskNotCompletable
}
