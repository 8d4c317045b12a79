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

type EventHandler struct {
	service *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error(err, "Failed to list events", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) Create(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) || errors.Is(err, service.ErrInvalidContent) || errors.Is(err, service.ErrInvalidTimestamp) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error(err, "Failed to create event", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, service.ErrEmptyTitle), errors.Is(err, service.ErrInvalidContent), errors.Is(err, service.ErrInvalidTimestamp):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error(err, "Failed to update event", map[string]interface{}{"id": id})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		}
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		logger.Error(err, "Failed to delete event", map[string]interface{}{"id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

func (h *EventHandler) Registrations(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	registrations, err := h.service.Registrations(c.Request.Context(), id)
	if err != nil {
		logger.Error(err, "Failed to list registrations", map[string]interface{}{"event_id": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registrations": registrations})
}

func (h *EventHandler) UpdateRegistration(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req models.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	if err := h.service.UpdateRegistrationStatus(c.Request.Context(), id, *req.Status); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration updated"})
}
