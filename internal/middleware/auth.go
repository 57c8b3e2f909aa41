package middleware

import (
	"context"
	"net/http"
	"strings"

	"brewline/internal/auth"

	"github.com/gin-gonic/gin"
)

type TokenVerifier interface {
	Verify(token string) (int64, error)
}

type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*auth.User, error)
}

// AuthMiddleware resolves the bearer token to a stored user. The row is read
// on every request so role changes apply immediately.
func AuthMiddleware(tokens TokenVerifier, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		auth.SetCurrentUser(c, user)
		c.Next()
	}
}
