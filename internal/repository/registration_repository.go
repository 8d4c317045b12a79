package repository

import (
	"context"

	"gorm.io/gorm"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
)

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) gateway.RegistrationGateway {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&registrations).Error
	return registrations, err
}

func (r *registrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Registration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}
