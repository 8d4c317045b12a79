package repository

import (
	"context"

	"gorm.io/gorm"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
)

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) gateway.MemberGateway {
	return &memberRepository{db: db}
}

func (r *memberRepository) List(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := r.db.WithContext(ctx).Order(`"order" ASC, id ASC`).Find(&members).Error
	return members, err
}

func (r *memberRepository) GetByID(ctx context.Context, id uint) (models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, id).Error
	return member, translate(err)
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return translate(r.db.WithContext(ctx).Save(member).Error)
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}
