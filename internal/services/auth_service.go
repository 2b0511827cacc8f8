package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole        = errors.New("role must be organizer or tasker")
	ErrFailedToCreateUser = errors.New("failed to create user")
)

// AuthService handles the mock sign-in flow.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// LoginInput represents a mock sign-in request.
type LoginInput struct {
	Role      models.UserRole
	Email     string
	FirstName string
	LastName  string
}

// Login returns the user registered under the email, creating it with the
// requested role on first sign-in. Without an email the role's demo account
// (<role>@example.com) is used.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if !input.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		email = fmt.Sprintf("%s@example.com", input.Role)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user = newDemoUser(input.Role, email)
	if name := strings.TrimSpace(input.FirstName); name != "" {
		user.FirstName = name
	}
	if name := strings.TrimSpace(input.LastName); name != "" {
		user.LastName = name
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	return user, nil
}

// newDemoUser fills in the profile a first-time mock sign-in starts with.
func newDemoUser(role models.UserRole, email string) *models.User {
	if role == models.RoleOrganizer {
		return &models.User{
			Email:             &email,
			FirstName:         "HTW",
			LastName:          "Organization",
			Role:              role,
			ProfileCompletion: 100,
		}
	}

	return &models.User{
		Email:             &email,
		FirstName:         "Mock Tasker",
		LastName:          "User",
		Role:              role,
		Skills:            []string{"Development", "Design"},
		ProfileCompletion: 50,
	}
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
