package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/dto"
	apierrors "github.com/htw-hub/questboard-api/internal/errors"
	"github.com/htw-hub/questboard-api/internal/middleware"
	"github.com/htw-hub/questboard-api/internal/services"
	"github.com/htw-hub/questboard-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
	taskService *services.TaskService
}

func NewUserHandler(userService *services.UserService, taskService *services.TaskService) *UserHandler {
	return &UserHandler{
		userService: userService,
		taskService: taskService,
	}
}

// ListTasks returns the tasks assigned to a user
func (h *UserHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasksByAssignee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListHistory returns a user's completion ledger, newest first
func (h *UserHandler) ListHistory(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	rows, err := h.userService.History(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryDTOs(rows))
}

// UpdateProfile edits the current user's profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		FirstName         *string  `json:"firstName"`
		LastName          *string  `json:"lastName"`
		ProfileImageURL   *string  `json:"profileImageUrl"`
		Skills            []string `json:"skills"`
		ProfileCompletion *int     `json:"profileCompletion"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, services.UpdateProfileInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		ProfileImageURL:   req.ProfileImageURL,
		Skills:            req.Skills,
		ProfileCompletion: req.ProfileCompletion,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
