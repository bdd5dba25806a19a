package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, orderBy string) ([]domain.Product, error) {
	switch orderBy {
	case "category":
		orderBy = "category ASC, product_name ASC"
	case "created_at desc", "":
		orderBy = "created_at DESC"
	}
	var list []domain.Product
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order(orderBy).
		Find(&list).Error
	return list, err
}

func (r *ProductRepo) CountByBusiness(ctx context.Context, businessIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	type row struct {
		BusinessID uuid.UUID
		N          int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Select("business_id, COUNT(*) AS n").
		Where("business_id IN ?", businessIDs).
		Group("business_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		out[r.BusinessID] = r.N
	}
	return out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "business_id = ?", businessID).Error
}
