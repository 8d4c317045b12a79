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

type JournalHandler struct {
	service *service.JournalService
}

func NewJournalHandler(svc *service.JournalService) *JournalHandler {
	return &JournalHandler{service: svc}
}

func (h *JournalHandler) List(c *gin.Context) {
	issues, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error(err, "Failed to list journal issues", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal issues"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

func (h *JournalHandler) Create(c *gin.Context) {
	var req models.CreateJournalIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error(err, "Failed to create journal issue", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal issue"})
		return
	}
	c.JSON(http.StatusCreated, issue)
}

func (h *JournalHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal issue not found"})
			return
		}
		logger.Error(err, "Failed to delete journal issue", map[string]interface{}{"id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete journal issue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Journal issue deleted"})
}
