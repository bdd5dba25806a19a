package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type BusinessRepo struct{ db *gorm.DB }

func NewBusinessRepo(db *gorm.DB) *BusinessRepo { return &BusinessRepo{db: db} }

func (r *BusinessRepo) Save(ctx context.Context, b *domain.Business) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BusinessRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var b domain.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Business, error) {
	var list []domain.Business
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *BusinessRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Business{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
