package service

import (
	"context"
	"errors"
	"strings"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/pkg/validator"
)

type ContactService struct {
	contacts gateway.ContactGateway
}

func NewContactService(gw *gateway.Gateway) *ContactService {
	return &ContactService{contacts: gw.Contacts}
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *ContactService) Submit(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error) {
	email := strings.TrimSpace(req.Email)
	if !validator.ValidateEmail(email) {
		return nil, errors.New("invalid email address")
	}
	message := validator.SanitizeString(req.Message)
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message is required")
	}

	contact := models.Contact{
		Name:    validator.SanitizeString(req.Name),
		Email:   email,
		Message: message,
	}
	if err := s.contacts.Create(ctx, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id uint) error {
	return s.contacts.Delete(ctx, id)
}
