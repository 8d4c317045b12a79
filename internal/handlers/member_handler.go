package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/service"
	"union-site-backend/pkg/logger"
)

type MemberHandler struct {
	service *service.MemberService
}

func NewMemberHandler(svc *service.MemberService) *MemberHandler {
	return &MemberHandler{service: svc}
}

func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error(err, "Failed to list members", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *MemberHandler) Create(c *gin.Context) {
	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), member)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error(err, "Failed to create member", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *MemberHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, member)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, service.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error(err, "Failed to update member", map[string]interface{}{"id": id})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		logger.Error(err, "Failed to delete member", map[string]interface{}{"id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}
