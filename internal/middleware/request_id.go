package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"messenger-service/internal/observability"
)

// RequestIDContextKey is where RequestID stores the id in the gin context.
const RequestIDContextKey = "request_id"

// RequestID reuses the incoming X-Request-Id or assigns a fresh one and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := observability.RequestIDFromRequest(c.Request)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDContextKey, requestID)
		c.Header(observability.RequestIDHeader, requestID)
		c.Next()
	}
}
