package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cityfix-be/models"
)

// RoleLookup resolves a caller's stored user record for tier checks.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireAdmin allows only callers whose stored role is admin. A missing
// user record simply fails the check.
func RequireAdmin(users RoleLookup) gin.HandlerFunc {
	return requireRole(users, func(role models.UserRole) bool {
		return role == models.RoleAdmin
	})
}

// RequireStaff allows callers whose stored role is staff or admin.
func RequireStaff(users RoleLookup) gin.HandlerFunc {
	return requireRole(users, func(role models.UserRole) bool {
		return role == models.RoleStaff || role == models.RoleAdmin
	})
}

func requireRole(users RoleLookup, allowed func(models.UserRole) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
			c.Abort()
			return
		}
		if user == nil || !allowed(user.Role) {
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		c.Next()
	}
}
