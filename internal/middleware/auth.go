package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/auth"
	"messenger-service/internal/observability"
)

// TokenHeader carries the session token on every authenticated request.
const TokenHeader = "X-Auth-Token"

// TokenValidator verifies session tokens.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// AuthMiddleware validates the X-Auth-Token header and stores the caller in the gin context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			observability.IncAuthFailure("missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			observability.IncAuthFailure("invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("userID", claims.ID)
		c.Set("login", claims.Login)
		c.Next()
	}
}
