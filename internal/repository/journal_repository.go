package repository

import (
	"context"

	"gorm.io/gorm"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
)

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) gateway.JournalGateway {
	return &journalRepository{db: db}
}

func (r *journalRepository) List(ctx context.Context) ([]models.JournalIssue, error) {
	var issues []models.JournalIssue
	err := r.db.WithContext(ctx).Order("number DESC").Find(&issues).Error
	return issues, err
}

func (r *journalRepository) GetByID(ctx context.Context, id uint) (models.JournalIssue, error) {
	var issue models.JournalIssue
	err := r.db.WithContext(ctx).First(&issue, id).Error
	return issue, translate(err)
}

func (r *journalRepository) Create(ctx context.Context, issue *models.JournalIssue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *journalRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.JournalIssue{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}
