package middlewares

import (
	"fmt"
	"net/http"

	"sirrs-be/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects requests whose authenticated actor does not hold one
// of the given roles. It must run after AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := Actor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error": fmt.Sprintf("User role '%s' is not authorized to access this route", actor.Role),
		})
		c.Abort()
	}
}
