package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) gateway.EventGateway {
	return &eventRepository{db: db}
}

func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	var items []models.Event
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("starts_at DESC NULLS LAST").
		Find(&items).Error
	return items, err
}

func (r *eventRepository) Upcoming(ctx context.Context, limit int) ([]models.Event, error) {
	var items []models.Event
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("starts_at >= ?", time.Now().UTC()).
		Order("starts_at ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (models.Event, error) {
	var item models.Event
	err := r.db.WithContext(ctx).Preload("Author").First(&item, id).Error
	return item, translate(err)
}

func (r *eventRepository) Create(ctx context.Context, item *models.Event) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *eventRepository) Update(ctx context.Context, item *models.Event) error {
	return translate(r.db.WithContext(ctx).Save(item).Error)
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Registrations").Delete(&models.Event{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}
