package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/htw-hub/questboard-api/internal/constants"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
	"github.com/htw-hub/questboard-api/internal/utils"
	"gorm.io/gorm"
)

// UserService covers profile edits and ledger history reads
type UserService struct {
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, historyRepo repository.HistoryRepository) *UserService {
	return &UserService{userRepo: userRepo, historyRepo: historyRepo}
}

// UpdateProfileInput holds the user-editable profile fields. Nil fields are left unchanged.
type UpdateProfileInput struct {
	FirstName         *string
	LastName          *string
	ProfileImageURL   *string
	Skills            []string
	ProfileCompletion *int
}

// UpdateProfile applies profile edits. XP and badges are never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	if input.ProfileCompletion != nil {
		pc := *input.ProfileCompletion
		if pc < 0 || pc > constants.MaxProfileCompletion {
			return nil, &ValidationError{Fields: map[string]string{
				"profileCompletion": fmt.Sprintf("must be between 0 and %d", constants.MaxProfileCompletion),
			}}
		}
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.ProfileImageURL != nil {
		user.ProfileImageURL = input.ProfileImageURL
	}
	if input.Skills != nil {
		user.Skills = normalizeSkills(input.Skills)
	}
	if input.ProfileCompletion != nil {
		user.ProfileCompletion = *input.ProfileCompletion
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.findUser(ctx, userID)
}

// History returns the user's completion ledger, newest first
func (s *UserService) History(ctx context.Context, userID string, params utils.PaginationParams) ([]models.UserTaskHistory, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	history, err := s.historyRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return history, nil
}

func (s *UserService) findUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// normalizeSkills trims entries and drops blanks and duplicates
func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	result := make([]string, 0, len(skills))

	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, skill)
	}

	return result
}
