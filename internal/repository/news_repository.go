package repository

import (
	"context"

	"gorm.io/gorm"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
)

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) gateway.NewsGateway {
	return &newsRepository{db: db}
}

func (r *newsRepository) List(ctx context.Context, page, perPage int) ([]models.News, error) {
	if page < 1 {
		page = 1
	}

	var items []models.News
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Tags").
		Where("published = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&items).Error
	return items, err
}

func (r *newsRepository) Latest(ctx context.Context, limit int) ([]models.News, error) {
	var items []models.News
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Tags").
		Where("published = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (models.News, error) {
	var item models.News
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Tags").
		First(&item, id).Error
	return item, translate(err)
}

func (r *newsRepository) Create(ctx context.Context, item *models.News) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *newsRepository) Update(ctx context.Context, item *models.News) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(item).Association("Tags").Replace(item.Tags); err != nil {
			return err
		}
		return tx.Save(item).Error
	})
	return translate(err)
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}
