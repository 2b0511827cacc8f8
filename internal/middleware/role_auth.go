package middleware

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/constants"
	apierrors "github.com/htw-hub/questboard-api/internal/errors"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
	"gorm.io/gorm"
)

// RequireRole loads the session user and rejects callers without role.
// Must run after RequireAuth.
func RequireRole(userRepo repository.UserRepository, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Session outlived its user
				apierrors.Unauthorized(c, "")
			} else {
				log.Printf("failed to load user %s: %v", userID, err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if user.Role != role {
			apierrors.Forbidden(c, "Only "+string(role)+"s can perform this action")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}
