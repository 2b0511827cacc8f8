package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	apierrors "github.com/htw-hub/questboard-api/internal/errors"
	"github.com/htw-hub/questboard-api/internal/services"
)

// respondServiceError maps service errors onto API error responses.
// Unrecognised errors are logged and reported as a bare 500.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Fields)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrTaskNotClaimable):
		apierrors.InvalidTransition(c, apierrors.ErrCodeTaskNotClaimable, "Task has already been claimed")
	case errors.Is(err, services.ErrTaskNotCompletable):
		apierrors.InvalidTransition(c, apierrors.ErrCodeTaskNotCompletable, "Task is not in progress")
	case errors.Is(err, services.ErrNotTaskAssignee):
		apierrors.Forbidden(c, "Not authorized to complete this task")
	case errors.Is(err, services.ErrNotOrganizer):
		apierrors.Forbidden(c, "Only organizers can create tasks")
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidOrganizationName),
		errors.Is(err, services.ErrInvalidOrganizationSize):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		apierrors.InternalError(c, "")
	}
}
