package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"union-site-backend/internal/blocks"
	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/cache"
	"union-site-backend/pkg/logger"
	"union-site-backend/pkg/validator"
)

var (
	ErrRegistrationClosed = errors.New("registration for this event is closed")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
)

type EventService struct {
	events        gateway.EventGateway
	registrations gateway.RegistrationGateway
	state         *store.State
	cache         *cache.Cache
	renderer      *blocks.Renderer
}

func NewEventService(gw *gateway.Gateway, state *store.State, c *cache.Cache) *EventService {
	return &EventService{
		events:        gw.Events,
		registrations: gw.Registrations,
		state:         state,
		cache:         c,
		renderer:      blocks.NewRenderer(blocks.Options{Prefix: "event", MinHeadingLevel: 2}),
	}
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

func (s *EventService) GetByID(ctx context.Context, id uint) (models.Event, error) {
	if s.cache != nil {
		var cached models.Event
		if err := s.cache.GetCachedEvent(id, &cached); err == nil {
			return cached, nil
		}
	}

	item, err := s.events.GetByID(ctx, id)
	if err != nil {
		return models.Event{}, err
	}

	if s.cache != nil {
		s.cache.CacheEvent(id, item)
	}
	return item, nil
}

func (s *EventService) Create(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if _, err := s.renderer.Render(req.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	startsAt, err := parseTimestamp(req.StartsAt)
	if err != nil {
		return nil, err
	}
	endsAt, err := parseTimestamp(req.EndsAt)
	if err != nil {
		return nil, err
	}

	item := models.Event{
		Title:            title,
		Summary:          validator.SanitizeString(req.Summary),
		CoverURL:         strings.TrimSpace(req.CoverURL),
		Location:         validator.SanitizeString(req.Location),
		StartsAt:         startsAt,
		EndsAt:           endsAt,
		RegistrationOpen: req.RegistrationOpen,
		Content:          req.Content,
		AuthorID:         req.AuthorID,
	}

	if err := s.events.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.state.UpsertEvent(item)
	logger.Info("Event created", map[string]interface{}{"id": item.ID, "title": item.Title})
	return &item, nil
}

func (s *EventService) Update(ctx context.Context, id uint, req models.UpdateEventRequest) (*models.Event, error) {
	item, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		item.Title = title
	}
	if req.Summary != nil {
		item.Summary = validator.SanitizeString(*req.Summary)
	}
	if req.CoverURL != nil {
		item.CoverURL = strings.TrimSpace(*req.CoverURL)
	}
	if req.Location != nil {
		item.Location = validator.SanitizeString(*req.Location)
	}
	if req.StartsAt != nil {
		startsAt, err := parseTimestamp(*req.StartsAt)
		if err != nil {
			return nil, err
		}
		item.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := parseTimestamp(*req.EndsAt)
		if err != nil {
			return nil, err
		}
		item.EndsAt = endsAt
	}
	if req.RegistrationOpen != nil {
		item.RegistrationOpen = *req.RegistrationOpen
	}
	if req.Content != nil {
		if _, err := s.renderer.Render(*req.Content); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		item.Content = *req.Content
	}
	if req.AuthorID != nil {
		item.AuthorID = req.AuthorID
	}

	if err := s.events.Update(ctx, &item); err != nil {
		return nil, err
	}

	s.state.UpsertEvent(item)
	s.invalidate(item.ID)
	return &item, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.state.RemoveEvent(id)
	s.invalidate(id)
	return nil
}

// Register files a public registration for an open event.
func (s *EventService) Register(ctx context.Context, req models.CreateRegistrationRequest) (*models.Registration, error) {
	event, err := s.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !event.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	registration := models.Registration{
		EventID:  event.ID,
		FullName: validator.SanitizeString(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Group:    validator.SanitizeString(req.Group),
		Status:   "pending",
	}
	if registration.Email != "" && !validator.ValidateEmail(registration.Email) {
		return nil, errors.New("invalid email address")
	}

	if err := s.registrations.Create(ctx, &registration); err != nil {
		return nil, err
	}
	return &registration, nil
}

func (s *EventService) Registrations(ctx context.Context, eventID uint) ([]models.Registration, error) {
	return s.registrations.ListByEvent(ctx, eventID)
}

func (s *EventService) UpdateRegistrationStatus(ctx context.Context, id uint, status string) error {
	switch status {
	case "pending", "confirmed", "declined":
	default:
		return fmt.Errorf("unknown registration status %q", status)
	}
	return s.registrations.UpdateStatus(ctx, id, status)
}

func (s *EventService) invalidate(id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateEvent(id); err != nil {
		logger.Error(err, "Failed to invalidate event cache", map[string]interface{}{"id": id})
	}
}

// parseTimestamp accepts RFC 3339 or the shorter datetime-local form.
func parseTimestamp(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}
