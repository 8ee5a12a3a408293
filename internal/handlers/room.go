package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/models"
	"messenger-service/internal/pagination"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

// RoomHandler manages room endpoints.
type RoomHandler struct {
	auditTrail
	rooms    repositories.RoomRepository
	files    repositories.FileRepository
	messages repositories.MessageRepository
	endRule  pagination.EndRule
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms repositories.RoomRepository, files repositories.FileRepository, messages repositories.MessageRepository, endRule pagination.EndRule, audit *telemetry.AuditEmitter) *RoomHandler {
	return &RoomHandler{
		auditTrail: auditTrail{audit: audit},
		rooms:      rooms,
		files:      files,
		messages:   messages,
		endRule:    endRule,
	}
}

// CreateRoom handles POST /create-room.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		Name    string       `json:"name" binding:"required"`
		Members []int        `json:"members"`
		Image   *models.File `json:"image"`
	}
	if !bindActionJSON(c, &req) {
		h.emitAudit(c, "ERROR", "invalid request payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondActionError(c, http.StatusBadRequest, "room name is required")
		return
	}

	roomID, err := h.rooms.CreateRoom(c.Request.Context(), models.CreateRoomParams{
		Name:      name,
		MemberIDs: models.NormalizeMembers(userID, req.Members),
		Image:     req.Image,
	})
	if err != nil {
		msg := "internal server error"
		switch {
		case errors.Is(err, repositories.ErrImageUploadFailed):
			msg = "image upload failed"
		case errors.Is(err, repositories.ErrRoomCreationFailed):
			msg = "room creation failed"
		case errors.Is(err, repositories.ErrRoomMembershipFailed):
			msg = "room membership failed"
		}
		h.emitAudit(c, "ERROR", msg)
		internalActionErrorWithMessage(c, "create room", err, msg)
		return
	}

	h.emitAudit(c, "INFO", "Room created")
	respondAction(c, gin.H{"roomId": roomID})
}

// GetRoom handles GET /get-room?id=.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	room, err := h.rooms.GetRoom(c.Request.Context(), roomID)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(c, "get room", err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// RoomImage handles GET /room-image?id=.
func (h *RoomHandler) RoomImage(c *gin.Context) {
	roomID, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	image, err := h.files.GetRoomImage(c.Request.Context(), roomID)
	if errors.Is(err, repositories.ErrImageNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(c, "room image", err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// CurrentRoomInfo handles GET /current-room-info?id=.
func (h *RoomHandler) CurrentRoomInfo(c *gin.Context) {
	roomID, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	info, err := h.rooms.GetRoomInfo(c.Request.Context(), c.GetInt("userID"), roomID)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(c, "current room info", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// RoomMessages handles GET /room-messages?id=&limit=&offset=.
func (h *RoomHandler) RoomMessages(c *gin.Context) {
	roomID, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	limit, offset, err := pagination.ParseParams(c.Query("limit"), c.Query("offset"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	msgs, err := h.messages.ListRoomMessages(c.Request.Context(), roomID, limit, offset)
	if err != nil {
		internalError(c, "room messages", err)
		return
	}
	total, err := h.messages.CountRoomMessages(c.Request.Context(), roomID)
	if err != nil {
		internalError(c, "room messages: count", err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(h.endRule, msgs, limit, offset, total))
}

// RoomMembers handles GET /room-members?id=.
func (h *RoomHandler) RoomMembers(c *gin.Context) {
	roomID, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	members, err := h.rooms.ListMembers(c.Request.Context(), c.GetInt("userID"), roomID)
	if err != nil {
		internalError(c, "room members", err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// RoomMessagesCount handles GET /room-messages-count?id=.
func (h *RoomHandler) RoomMessagesCount(c *gin.Context) {
	roomID, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	n, err := h.messages.CountRoomMessages(c.Request.Context(), roomID)
	if err != nil {
		internalError(c, "room messages count", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_count": n})
}
