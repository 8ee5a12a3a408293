package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/repositories"
)

// MessageHandler sends messages and tracks unread state.
type MessageHandler struct {
	messages repositories.MessageRepository
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(messages repositories.MessageRepository) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// UnreadMessagesAmount handles GET /unread-messages-amount?id= or ?roomId=.
func (h *MessageHandler) UnreadMessagesAmount(c *gin.Context) {
	userID := c.GetInt("userID")
	var (
		n   int
		err error
	)
	if roomID, ok := queryID(c, "roomId"); ok {
		n, err = h.messages.CountUnreadRoom(c.Request.Context(), userID, roomID)
	} else if fromID, ok := queryID(c, "id"); ok {
		n, err = h.messages.CountUnreadDirect(c.Request.Context(), userID, fromID)
	} else {
		respondError(c, http.StatusBadRequest, "id or roomId is required")
		return
	}
	if err != nil {
		internalError(c, "unread messages amount", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// SendMessage handles POST /send-message to a user (toId) or a room (roomId).
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req struct {
		ToID   int    `json:"toId"`
		RoomID int    `json:"roomId"`
		Text   string `json:"text" binding:"required"`
	}
	if !bindActionJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" || (req.ToID > 0) == (req.RoomID > 0) {
		respondActionError(c, http.StatusBadRequest, "text and exactly one of toId or roomId are required")
		return
	}

	ctx := c.Request.Context()
	userID := c.GetInt("userID")
	var err error
	var result any
	if req.RoomID > 0 {
		result, err = h.messages.SendRoomMessage(ctx, userID, req.RoomID, req.Text)
	} else {
		result, err = h.messages.SendDirectMessage(ctx, userID, req.ToID, req.Text)
	}
	switch {
	case err == nil:
		respondAction(c, result)
	case errors.Is(err, repositories.ErrNotRoomMember):
		respondActionError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, repositories.ErrSelfDialog):
		respondActionError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrUserNotFound):
		respondActionError(c, http.StatusNotFound, err.Error())
	default:
		internalActionError(c, "send message", err)
	}
}

// ReadMessages handles PATCH /read-messages for a dialog (id) or a room (roomId).
func (h *MessageHandler) ReadMessages(c *gin.Context) {
	var req struct {
		ID     int `json:"id"`
		RoomID int `json:"roomId"`
	}
	if !bindActionJSON(c, &req) {
		return
	}
	if (req.ID > 0) == (req.RoomID > 0) {
		respondActionError(c, http.StatusBadRequest, "exactly one of id or roomId is required")
		return
	}

	var (
		n   int64
		err error
	)
	if req.RoomID > 0 {
		n, err = h.messages.MarkRoomRead(c.Request.Context(), c.GetInt("userID"), req.RoomID)
	} else {
		n, err = h.messages.MarkDirectRead(c.Request.Context(), c.GetInt("userID"), req.ID)
	}
	if err != nil {
		internalActionError(c, "read messages", err)
		return
	}
	respondAction(c, gin.H{"updated": n})
}
