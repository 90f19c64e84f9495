package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/adisharma/job-tracker-api/internal/errors"
	"github.com/adisharma/job-tracker-api/internal/services"
)

// RequireStaff gates admin-only routes. It runs after RequireAuth and
// rejects non-staff users with 403.
func RequireStaff(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsStaff {
			apierrors.Forbidden(c, "Staff access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
