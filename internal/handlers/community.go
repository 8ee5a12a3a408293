package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/models"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

// CommunityHandler manages community endpoints.
type CommunityHandler struct {
	auditTrail
	communities repositories.CommunityRepository
}

// NewCommunityHandler constructs a CommunityHandler.
func NewCommunityHandler(communities repositories.CommunityRepository, audit *telemetry.AuditEmitter) *CommunityHandler {
	return &CommunityHandler{auditTrail: auditTrail{audit: audit}, communities: communities}
}

// CheckCommunityName handles GET /check-community-name?name=.
func (h *CommunityHandler) CheckCommunityName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	exists, err := h.communities.NameExists(c.Request.Context(), name)
	if err != nil {
		internalError(c, "check community name", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": !exists})
}

// CreateCommunity handles POST /create-community.
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	var req struct {
		Name        string       `json:"name" binding:"required"`
		Description string       `json:"description"`
		Image       *models.File `json:"image"`
	}
	if !bindActionJSON(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondActionError(c, http.StatusBadRequest, "community name is required")
		return
	}

	community, err := h.communities.CreateCommunity(c.Request.Context(), models.CreateCommunityParams{
		Name:        name,
		Description: req.Description,
		CreatedBy:   c.GetInt("userID"),
		Image:       req.Image,
	})
	switch {
	case err == nil:
		h.emitAudit(c, "INFO", "Community created")
		respondAction(c, community)
	case errors.Is(err, repositories.ErrCommunityNameTaken):
		respondActionError(c, http.StatusConflict, err.Error())
	case errors.Is(err, repositories.ErrImageUploadFailed):
		h.emitAudit(c, "ERROR", "image upload failed")
		internalActionErrorWithMessage(c, "create community", err, "image upload failed")
	default:
		h.emitAudit(c, "ERROR", "community creation failed")
		internalActionError(c, "create community", err)
	}
}
