package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"union-site-backend/internal/middleware"
	"union-site-backend/internal/models"
	"union-site-backend/internal/router"
	"union-site-backend/internal/service"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/logger"
)

// SiteHandler serves the public reading surface: page navigation, the
// infinite news feed, event registration and the contact form.
type SiteHandler struct {
	router   *router.Router
	state    *store.State
	events   *service.EventService
	contacts *service.ContactService
}

func NewSiteHandler(r *router.Router, state *store.State, events *service.EventService, contacts *service.ContactService) *SiteHandler {
	return &SiteHandler{router: r, state: state, events: events, contacts: contacts}
}

// Page resolves a location path into rendered page markup and metadata.
func (h *SiteHandler) Page(c *gin.Context) {
	page := h.router.Navigate(c.Request.Context(), c.Query("path"))
	middleware.CountNavigation(page.ActiveNav)

	c.JSON(http.StatusOK, gin.H{
		"route":       page.Route,
		"html":        page.HTML,
		"title":       page.Title,
		"description": page.Description,
		"active_nav":  page.ActiveNav,
		"scroll_top":  page.ScrollTop,
	})
}

// MoreNews loads the next feed page and returns the full accumulated list.
func (h *SiteHandler) MoreNews(c *gin.Context) {
	if err := h.router.LoadMoreNews(c.Request.Context()); err != nil {
		logger.Error(err, "Failed to load more news", nil)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load more news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"news":      h.state.News(),
		"exhausted": h.state.NewsExhausted(),
	})
}

// Register files a public event registration.
func (h *SiteHandler) Register(c *gin.Context) {
	var req models.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registration, err := h.events.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"registration": registration})
}

// Contact accepts a contact-form submission.
func (h *SiteHandler) Contact(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contacts.Submit(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you, we will get back to you", "id": contact.ID})
}
