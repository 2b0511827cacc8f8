package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/constants"
	"github.com/htw-hub/questboard-api/internal/dto"
	apierrors "github.com/htw-hub/questboard-api/internal/errors"
	"github.com/htw-hub/questboard-api/internal/middleware"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/services"
)

// AuthHandler coordinates the mock sign-in HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login signs in as the account for the email (or the role's demo account)
// and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Role      string `json:"role" binding:"required"`
		Email     string `json:"email" binding:"omitempty,email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Role:      models.UserRole(req.Role),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	redirect := "/onboarding/tasker"
	if user.Role == models.RoleOrganizer {
		redirect = "/onboarding/organization"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"user":     dto.ToUserDTO(*user),
		"redirect": redirect,
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Status reports whether the session is signed in without failing when it is not.
func (h *AuthHandler) Status(c *gin.Context) {
	session := sessions.Default(c)
	userID, _ := session.Get(constants.ContextKeyUserID).(string)

	if userID != "" {
		if user, err := h.authService.GetUser(c.Request.Context(), userID); err == nil {
			c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": dto.ToUserDTO(*user)})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": false, "user": nil})
}
