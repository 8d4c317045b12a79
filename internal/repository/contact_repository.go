package repository

import (
	"context"

	"gorm.io/gorm"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
)

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) gateway.ContactGateway {
	return &contactRepository{db: db}
}

func (r *contactRepository) List(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}
