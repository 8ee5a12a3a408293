package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/models"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

// UserHandler serves profiles, avatars and user lists.
type UserHandler struct {
	auditTrail
	users repositories.UserRepository
	files repositories.FileRepository
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users repositories.UserRepository, files repositories.FileRepository, audit *telemetry.AuditEmitter) *UserHandler {
	return &UserHandler{auditTrail: auditTrail{audit: audit}, users: users, files: files}
}

// User handles GET /user?id=.
func (h *UserHandler) User(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	user, err := h.users.GetSummary(c.Request.Context(), c.GetInt("userID"), id)
	if errors.Is(err, repositories.ErrUserNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(c, "user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Image handles GET /image?id=.
func (h *UserHandler) Image(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	image, err := h.files.GetUserImage(c.Request.Context(), id)
	if errors.Is(err, repositories.ErrImageNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		internalError(c, "user image", err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// SafeImage handles POST /safe-image and replaces the caller's avatar.
func (h *UserHandler) SafeImage(c *gin.Context) {
	var req struct {
		Image *models.File `json:"image" binding:"required"`
	}
	if !bindActionJSON(c, &req) {
		return
	}

	saved, err := h.files.SaveUserImage(c.Request.Context(), c.GetInt("userID"), *req.Image)
	if err != nil {
		h.emitAudit(c, "ERROR", "image upload failed")
		internalActionErrorWithMessage(c, "save user image", err, "image upload failed")
		return
	}
	h.emitAudit(c, "INFO", "User image updated")
	respondAction(c, saved)
}

// UserList handles GET /user-list?category=.
func (h *UserHandler) UserList(c *gin.Context) {
	category, err := models.ParseUserListCategory(c.Query("category"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	h.listUsers(c, category)
}

// Friends handles GET /get-friends.
func (h *UserHandler) Friends(c *gin.Context) {
	h.listUsers(c, models.UserListFriends)
}

// FriendRequestsToUser handles GET /friend-request-list-to-user.
func (h *UserHandler) FriendRequestsToUser(c *gin.Context) {
	h.listUsers(c, models.UserListRequestsTo)
}

// FriendRequestsFromUser handles GET /friend-request-list-from-user.
func (h *UserHandler) FriendRequestsFromUser(c *gin.Context) {
	h.listUsers(c, models.UserListRequestsFrom)
}

func (h *UserHandler) listUsers(c *gin.Context, category models.UserListCategory) {
	users, err := h.users.ListUsers(c.Request.Context(), c.GetInt("userID"), category)
	if err != nil {
		internalError(c, "user list "+string(category), err)
		return
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	c.JSON(http.StatusOK, users)
}
