package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/service"
	"union-site-backend/pkg/logger"
)

// ContactHandler is the admin view over contact-form submissions. The
// public submit endpoint lives on SiteHandler.
type ContactHandler struct {
	service *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error(err, "Failed to list contact submissions", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contact submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		logger.Error(err, "Failed to delete contact submission", map[string]interface{}{"id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact submission"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted"})
}
