package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

// FriendHandler manages friend requests and friendships.
type FriendHandler struct {
	auditTrail
	friends repositories.FriendRepository
}

// NewFriendHandler constructs a FriendHandler.
func NewFriendHandler(friends repositories.FriendRepository, audit *telemetry.AuditEmitter) *FriendHandler {
	return &FriendHandler{auditTrail: auditTrail{audit: audit}, friends: friends}
}

type friendRequest struct {
	ID       int  `json:"id" binding:"required,gt=0"`
	Incoming bool `json:"incoming"`
}

func (h *FriendHandler) bind(c *gin.Context) (friendRequest, bool) {
	var req friendRequest
	if !bindActionJSON(c, &req) {
		return req, false
	}
	if req.ID == c.GetInt("userID") {
		respondActionError(c, http.StatusBadRequest, "cannot target yourself")
		return req, false
	}
	return req, true
}

// AddFriendRequest handles PATCH /add-friend-request.
func (h *FriendHandler) AddFriendRequest(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	err := h.friends.AddRequest(c.Request.Context(), c.GetInt("userID"), req.ID)
	switch {
	case err == nil:
		h.emitAudit(c, "INFO", "Friend request sent")
		respondAction(c, nil)
	case errors.Is(err, repositories.ErrAlreadyFriends), errors.Is(err, repositories.ErrFriendRequestExists):
		respondNoOp(c, err.Error())
	case errors.Is(err, repositories.ErrUserNotFound):
		respondActionError(c, http.StatusNotFound, err.Error())
	default:
		h.emitAudit(c, "ERROR", "friend request failed")
		internalActionError(c, "add friend request", err)
	}
}

// RemoveFriendRequest handles PATCH /remove-friend-request. With incoming set
// the caller declines a request sent to them, otherwise it withdraws its own.
func (h *FriendHandler) RemoveFriendRequest(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	from, to := c.GetInt("userID"), req.ID
	if req.Incoming {
		from, to = to, from
	}
	removed, err := h.friends.RemoveRequest(c.Request.Context(), from, to)
	if err != nil {
		internalActionError(c, "remove friend request", err)
		return
	}
	if !removed {
		respondNoOp(c, repositories.ErrFriendRequestNotFound.Error())
		return
	}
	h.emitAudit(c, "INFO", "Friend request removed")
	respondAction(c, nil)
}

// ApplyFriendRequest handles POST /apply-friend-request for a request sent by id.
func (h *FriendHandler) ApplyFriendRequest(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	err := h.friends.AcceptRequest(c.Request.Context(), req.ID, c.GetInt("userID"))
	if errors.Is(err, repositories.ErrFriendRequestNotFound) {
		respondNoOp(c, err.Error())
		return
	}
	if err != nil {
		h.emitAudit(c, "ERROR", "friend request accept failed")
		internalActionError(c, "apply friend request", err)
		return
	}
	h.emitAudit(c, "INFO", "Friend request accepted")
	respondAction(c, nil)
}

// DeleteFromFriends handles POST /delete-from-friends. Removing a friendship
// that does not exist is not an error: it answers 200 with actionResult false.
func (h *FriendHandler) DeleteFromFriends(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	removed, err := h.friends.RemoveFriend(c.Request.Context(), c.GetInt("userID"), req.ID)
	if err != nil {
		h.emitAudit(c, "ERROR", "friend removal failed")
		internalActionErrorWithMessage(c, "delete from friends", err, "friend removal failed")
		return
	}
	if !removed {
		respondNoOp(c, "users are not friends")
		return
	}
	h.emitAudit(c, "INFO", "Friend removed")
	respondAction(c, nil)
}
