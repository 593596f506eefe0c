package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
)

// RequireStaff allows only staff users. Must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsStaff {
			apierrors.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}
