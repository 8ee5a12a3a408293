package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/telemetry"
)

// AuditSink describes where audit events go, for the debug endpoint.
type AuditSink struct {
	Mode       string
	NoopReason string
}

// RegisterDebugRoutes wires GET /debug/audit-test when enabled. It emits a
// test event and reports the active publisher.
func RegisterDebugRoutes(router *gin.Engine, emitter *telemetry.AuditEmitter, sink AuditSink, enabled bool) {
	if !enabled {
		return
	}

	router.GET("/debug/audit-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit emitter not configured"})
			return
		}
		requestID := requestIDFromContext(c)
		emitter.Emit(c.Request.Context(), "INFO", "audit test event", requestID, userIDFromContext(c))

		body := gin.H{"status": "ok", "publisher": sink.Mode, "request_id": requestID}
		if sink.NoopReason != "" {
			body["noop_reason"] = sink.NoopReason
		}
		c.JSON(http.StatusOK, body)
	})
}
