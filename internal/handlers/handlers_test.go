package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"messenger-service/internal/mocks"
	"messenger-service/internal/telemetry"
)

type actionEnvelope struct {
	ActionResult bool            `json:"actionResult"`
	Result       json.RawMessage `json:"result"`
	Error        string          `json:"error"`
}

func decodeAction(t *testing.T, rec *httptest.ResponseRecorder) actionEnvelope {
	t.Helper()
	var env actionEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Set("login", "alice")
		c.Next()
	})
	return r
}

func newTestAudit(pub *mocks.PublisherMock) *telemetry.AuditEmitter {
	return telemetry.NewAuditEmitter(pub, "audit.messenger", "messenger-service", "test")
}
