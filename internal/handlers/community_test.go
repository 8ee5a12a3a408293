package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"messenger-service/internal/mocks"
	"messenger-service/internal/models"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

func setupCommunityRouter(handler *CommunityHandler) *gin.Engine {
	r := newTestEngine()
	r.GET("/check-community-name", handler.CheckCommunityName)
	r.POST("/create-community", handler.CreateCommunity)
	return r
}

func TestCheckCommunityName(t *testing.T) {
	communities := new(mocks.CommunityRepositoryMock)
	router := setupCommunityRouter(NewCommunityHandler(communities, nil))

	communities.On("NameExists", mock.Anything, "gophers").Return(true, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/check-community-name?name=gophers", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"available":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/check-community-name", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	communities.AssertExpectations(t)
}

func TestCreateCommunity(t *testing.T) {
	communities := new(mocks.CommunityRepositoryMock)
	pub := new(mocks.PublisherMock)
	router := setupCommunityRouter(NewCommunityHandler(communities, newTestAudit(pub)))

	communities.On("CreateCommunity", mock.Anything, models.CreateCommunityParams{Name: "gophers", Description: "go", CreatedBy: 1}).
		Return(models.Community{ID: 4, Name: "gophers", Description: "go", CreatedBy: 1}, nil).Once()
	pub.On("Publish", mock.Anything, "audit.messenger", mock.MatchedBy(func(env telemetry.AuditEnvelope) bool {
		return env.Payload.Text == "Community created" && env.Payload.Level == "INFO"
	}), mock.Anything).Return(nil).Once()

	rec := doJSON(router, http.MethodPost, "/create-community", `{"name":" gophers ","description":"go"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeAction(t, rec).ActionResult)
	communities.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateCommunityNameTaken(t *testing.T) {
	communities := new(mocks.CommunityRepositoryMock)
	router := setupCommunityRouter(NewCommunityHandler(communities, nil))

	communities.On("CreateCommunity", mock.Anything, mock.Anything).Return(nil, repositories.ErrCommunityNameTaken).Once()

	rec := doJSON(router, http.MethodPost, "/create-community", `{"name":"gophers"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, decodeAction(t, rec).ActionResult)
}
