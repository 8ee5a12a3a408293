package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"messenger-service/internal/auth"
	"messenger-service/internal/models"
	"messenger-service/internal/observability"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID int, login string) (string, error)
}

// AuthHandler serves registration, login and session endpoints.
type AuthHandler struct {
	auditTrail
	users  repositories.UserRepository
	tokens TokenIssuer
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users repositories.UserRepository, tokens TokenIssuer, audit *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{auditTrail: auditTrail{audit: audit}, users: users, tokens: tokens}
}

// Login handles GET /login?login=&password=.
func (h *AuthHandler) Login(c *gin.Context) {
	login, password := c.Query("login"), c.Query("password")
	if login == "" || password == "" {
		respondError(c, http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := h.users.GetByLogin(c.Request.Context(), login)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		internalError(c, "login", err)
		return
	}
	if err != nil || !auth.CheckPassword(user.Password, password) {
		observability.IncAuthFailure("credentials")
		log.Printf("login: rejected %q from %s", login, observability.IPFromRequest(c.Request))
		h.emitAudit(c, "ERROR", "login failed")
		respondError(c, http.StatusUnauthorized, "invalid login or password")
		return
	}

	if err := h.users.SetOnline(c.Request.Context(), user.ID); err != nil {
		internalError(c, "login: set online", err)
		return
	}

	authUser, err := h.authUser(user)
	if err != nil {
		internalError(c, "login: issue token", err)
		return
	}
	c.Set("userID", user.ID)
	h.emitAudit(c, "INFO", "User logged in")
	c.JSON(http.StatusOK, authUser)
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Login     string `json:"login" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
	}
	if !bindActionJSON(c, &req) {
		return
	}

	exists, err := h.users.LoginExists(c.Request.Context(), req.Login)
	if err != nil {
		internalActionError(c, "register: check login", err)
		return
	}
	if exists {
		respondActionError(c, http.StatusConflict, repositories.ErrDuplicateLogin.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalActionError(c, "register: hash password", err)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), models.CreateUserParams{
		Login:        req.Login,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if errors.Is(err, repositories.ErrDuplicateLogin) {
		respondActionError(c, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.emitAudit(c, "ERROR", "registration failed")
		internalActionError(c, "register", err)
		return
	}

	authUser, err := h.authUser(user)
	if err != nil {
		internalActionError(c, "register: issue token", err)
		return
	}
	c.Set("userID", user.ID)
	h.emitAudit(c, "INFO", "User registered")
	respondAction(c, authUser)
}

// Logout handles DELETE /logout. The token stays valid until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.SetOffline(c.Request.Context(), c.GetInt("userID")); err != nil {
		internalActionError(c, "logout", err)
		return
	}
	respondAction(c, nil)
}

// RefreshToken handles GET /refresh-token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := h.tokens.Issue(c.GetInt("userID"), c.GetString("login"))
	if err != nil {
		internalError(c, "refresh token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) authUser(user models.User) (models.AuthUser, error) {
	token, err := h.tokens.Issue(user.ID, user.Login)
	if err != nil {
		return models.AuthUser{}, err
	}
	return models.AuthUser{
		ID:        user.ID,
		Login:     user.Login,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Token:     token,
	}, nil
}
