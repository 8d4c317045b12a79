package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"union-site-backend/internal/service"
	"union-site-backend/pkg/logger"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error(err, "Sign-in failed", nil)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Authentication service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": session.AccessToken,
		"expires_at":   session.ExpiresAt,
		"user":         session.User,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context()); err != nil {
		logger.Error(err, "Sign-out failed", nil)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.auth.Session(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expires_at": session.ExpiresAt,
		"user":       session.User,
	})
}
