package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/service"
	"union-site-backend/pkg/logger"
)

type NewsHandler struct {
	service *service.NewsService
}

func NewNewsHandler(svc *service.NewsService) *NewsHandler {
	return &NewsHandler{service: svc}
}

func (h *NewsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	items, err := h.service.List(c.Request.Context(), page, perPage)
	if err != nil {
		logger.Error(err, "Failed to list news", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list news"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": items, "page": page})
}

func (h *NewsHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		logger.Error(err, "Failed to load news", map[string]interface{}{"id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load news"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) || errors.Is(err, service.ErrInvalidContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error(err, "Failed to create news", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create news"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *NewsHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req models.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
		case errors.Is(err, service.ErrEmptyTitle), errors.Is(err, service.ErrInvalidContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error(err, "Failed to update news", map[string]interface{}{"id": id})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update news"})
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		logger.Error(err, "Failed to delete news", map[string]interface{}{"id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete news"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News deleted"})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
