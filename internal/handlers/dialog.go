package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/models"
	"messenger-service/internal/pagination"
	"messenger-service/internal/repositories"
)

// DialogHandler serves the dialog list and one-to-one conversations.
type DialogHandler struct {
	dialogs  repositories.DialogRepository
	rooms    repositories.RoomRepository
	messages repositories.MessageRepository
	endRule  pagination.EndRule
}

// NewDialogHandler constructs a DialogHandler.
func NewDialogHandler(dialogs repositories.DialogRepository, rooms repositories.RoomRepository, messages repositories.MessageRepository, endRule pagination.EndRule) *DialogHandler {
	return &DialogHandler{dialogs: dialogs, rooms: rooms, messages: messages, endRule: endRule}
}

// reap drops the caller's empty dialogs before a dialog read.
func (h *DialogHandler) reap(c *gin.Context) bool {
	if _, err := h.dialogs.ClearEmptyDialogs(c.Request.Context(), c.GetInt("userID")); err != nil {
		internalError(c, "clear empty dialogs", err)
		return false
	}
	return true
}

// DialogList handles GET /dialog-list?search=.
func (h *DialogHandler) DialogList(c *gin.Context) {
	if !h.reap(c) {
		return
	}
	userID := c.GetInt("userID")
	search := c.Query("search")

	dialogs, err := h.dialogs.ListDialogs(c.Request.Context(), userID, search)
	if err != nil {
		internalError(c, "dialog list", err)
		return
	}
	rooms, err := h.rooms.ListRooms(c.Request.Context(), userID, search)
	if err != nil {
		internalError(c, "dialog list: rooms", err)
		return
	}
	c.JSON(http.StatusOK, models.MergeDialogList(dialogs, rooms))
}

// DialogListItem handles GET /dialog-list-item?dialogId=.
func (h *DialogHandler) DialogListItem(c *gin.Context) {
	otherID, ok := queryID(c, "dialogId")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid dialogId")
		return
	}
	if !h.reap(c) {
		return
	}

	item, err := h.dialogs.GetDialogListItem(c.Request.Context(), c.GetInt("userID"), otherID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		internalError(c, "dialog list item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteEmptyDialogs handles DELETE /delete-empty-dialogs.
func (h *DialogHandler) DeleteEmptyDialogs(c *gin.Context) {
	n, err := h.dialogs.ClearEmptyDialogs(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		internalActionError(c, "delete empty dialogs", err)
		return
	}
	respondAction(c, gin.H{"deleted": n})
}

// Dialog handles GET /dialog?id=&limit=&offset=. The dialog is created on first read.
func (h *DialogHandler) Dialog(c *gin.Context) {
	otherID, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	limit, offset, err := pagination.ParseParams(c.Query("limit"), c.Query("offset"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !h.reap(c) {
		return
	}

	ctx := c.Request.Context()
	userID := c.GetInt("userID")
	if _, err := h.dialogs.EnsureDialog(ctx, userID, otherID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSelfDialog):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "user not found")
		default:
			internalError(c, "dialog: ensure", err)
		}
		return
	}

	msgs, err := h.messages.ListDirectMessages(ctx, userID, otherID, limit, offset)
	if err != nil {
		internalError(c, "dialog: messages", err)
		return
	}
	total, err := h.messages.CountDirectMessages(ctx, userID, otherID)
	if err != nil {
		internalError(c, "dialog: count", err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(h.endRule, msgs, limit, offset, total))
}

// DialogMessagesCount handles GET /dialog-messages-count?id=.
func (h *DialogHandler) DialogMessagesCount(c *gin.Context) {
	otherID, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	n, err := h.messages.CountDirectMessages(c.Request.Context(), c.GetInt("userID"), otherID)
	if err != nil {
		internalError(c, "dialog messages count", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_count": n})
}
