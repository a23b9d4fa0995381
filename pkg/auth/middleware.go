package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and stores the actor identity
// on the request context. Authorization decisions beyond identity belong to
// the caller-facing access control layer.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		claims, err := ValidateJWT(token, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set("actor_id", claims.UserID)
		c.Set("actor_role", claims.Role)
		c.Next()
	}
}

// ActorID returns the authenticated actor id stored by JWTAuthMiddleware.
func ActorID(c *gin.Context) string {
	return c.GetString("actor_id")
}
