package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type ProductUC struct {
	Products   domain.ProductRepo
	Businesses domain.BusinessRepo
	Storage    domain.FileStorage
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if strings.TrimSpace(p.ProductName) == "" {
		return errors.New("product name is required")
	}
	if p.BusinessID == uuid.Nil {
		return errors.New("business_id is required")
	}
	if p.Price < 0 {
		return domain.ErrInvalidPrice
	}
	// el negocio tiene que existir: producto sin padre no hay
	if _, err := uc.Businesses.FindByID(ctx, p.BusinessID); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Category == "" {
		p.Category = "General"
	}
	return uc.Products.Save(ctx, p)
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]domain.Product, error) {
	return uc.Products.ListByBusiness(ctx, businessID, "created_at desc")
}

func (uc *ProductUC) Update(ctx context.Context, p *domain.Product) error {
	if p.Price < 0 {
		return domain.ErrInvalidPrice
	}
	return uc.Products.Save(ctx, p)
}

func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Products.Delete(ctx, id); err != nil {
		return err
	}
	for _, img := range append([]string{p.ImageURL}, p.Images...) {
		if strings.TrimSpace(img) == "" {
			continue
		}
		if err := uc.Storage.Remove(ctx, img); err != nil {
			log.Warn().Err(err).Str("path", img).Msg("borrar imagen de producto")
		}
	}
	return nil
}
