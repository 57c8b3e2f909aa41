package middleware

import (
	"net/http"

	"brewline/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireMaster must run after AuthMiddleware.
func RequireMaster() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !user.IsMaster {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "master access required"})
			return
		}

		c.Next()
	}
}
