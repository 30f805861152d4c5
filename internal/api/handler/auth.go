package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pingme/backend/internal/auth"
	"pingme/backend/internal/models"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string `json:"token"`
	User  gin.H  `json:"user"`
}

// Register creates an account and returns a signed token for it.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username & password required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	user := &models.User{Username: req.Username, PasswordHash: hash}
	if err := h.Storage.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
			return
		}
		h.Log.Error("creating user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.Log.Error("issuing token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  gin.H{"id": user.ID, "username": user.Username},
	})
}

// Login verifies credentials and returns a signed token. Unknown username
// and wrong password are indistinguishable to the caller.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username & password required"})
		return
	}

	user, err := h.Storage.FindUserByUsername(req.Username)
	if err != nil {
		h.Log.Error("looking up user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.Log.Error("issuing token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  gin.H{"id": user.ID, "username": user.Username},
	})
}
