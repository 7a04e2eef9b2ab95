package middleware

import (
	"net/http"
	"strings"

	"flowdeck/internal/pkg"
	redisrepo "flowdeck/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"
)

// AuthMiddleware verifies the bearer token and checks it is still the user's
// live session in redis (a login elsewhere replaces it).
func AuthMiddleware(sessions *redisrepo.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := pkg.ParseAccess(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		liveToken, err := sessions.GetUserToken(claims.UserID)
		if err != nil || liveToken != parts[1] {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "session replaced by a newer login"})
			c.Abort()
			return
		}

		if err := sessions.ExtendUserToken(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
