package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type BusinessUC struct {
	Businesses domain.BusinessRepo
	Products   domain.ProductRepo
	Storage    domain.FileStorage
	Enhancer   domain.ContentEnhancer // nil => sin AI
}

type BusinessWithCount struct {
	domain.Business
	ProductsCount int64 `json:"products_count"`
	Views         int64 `json:"views"`
}

// Create aplica defaults, opcionalmente enriquece el copy con AI y persiste.
// Una falla de AI nunca tira el alta: se sigue con el contenido manual.
func (uc *BusinessUC) Create(ctx context.Context, b *domain.Business, serviceNames []string, useAI bool) error {
	if strings.TrimSpace(b.BusinessName) == "" {
		return errors.New("business_name is required")
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.Normalize()

	if b.Description == "" {
		b.Description = fmt.Sprintf("Professional %s services", b.Industry)
	}
	if b.Tagline == "" {
		b.Tagline = fmt.Sprintf("Quality %s You Can Trust", b.Industry)
	}

	if useAI && uc.Enhancer != nil {
		in := domain.EnhanceInput{
			BusinessName: b.BusinessName,
			Industry:     b.Industry,
			Description:  b.Description,
			Services:     serviceNames,
		}
		if content, err := uc.Enhancer.GenerateAll(ctx, in); err != nil {
			log.Warn().Err(err).Str("business", b.BusinessName).Msg("AI falló, se sigue con contenido manual")
		} else {
			if content.Tagline != "" {
				b.Tagline = content.Tagline
			}
			if content.HeroDescription != "" {
				b.Description = content.HeroDescription
			}
			b.AIAbout = content.About
			b.AIPills = content.Pills
			b.AIStats = content.Stats
			if len(content.Services) > 0 {
				b.Services = content.Services
			}
		}
	}

	if len(b.Services) == 0 {
		b.Services = expandServices(serviceNames)
	}
	if b.AIAbout == "" {
		b.AIAbout = fmt.Sprintf("%s delivers exceptional %s services with professionalism and dedication.", b.BusinessName, b.Industry)
	}
	if len(b.AIPills) == 0 {
		b.AIPills = []string{"Trusted", "Professional", "Reliable"}
	}

	return uc.Businesses.Save(ctx, b)
}

// expandServices convierte nombres pelados en pares {nombre, descripción}.
func expandServices(names []string) []domain.Service {
	out := make([]domain.Service, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, domain.Service{
			Name:        n,
			Description: fmt.Sprintf("Professional %s services tailored to your needs.", strings.ToLower(n)),
		})
	}
	return out
}

func (uc *BusinessUC) Get(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	return uc.Businesses.FindByID(ctx, id)
}

// ListByUser devuelve los perfiles del usuario con su conteo real de productos.
func (uc *BusinessUC) ListByUser(ctx context.Context, userID uuid.UUID) ([]BusinessWithCount, error) {
	list, err := uc.Businesses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []BusinessWithCount{}, nil
	}
	ids := make([]uuid.UUID, len(list))
	for i, b := range list {
		ids[i] = b.ID
	}
	counts, err := uc.Products.CountByBusiness(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Msg("conteo de productos")
		counts = map[uuid.UUID]int64{}
	}
	out := make([]BusinessWithCount, len(list))
	for i, b := range list {
		out[i] = BusinessWithCount{Business: b, ProductsCount: counts[b.ID]}
	}
	return out, nil
}

func (uc *BusinessUC) Update(ctx context.Context, b *domain.Business) error {
	b.Normalize()
	return uc.Businesses.Save(ctx, b)
}

// Delete es explícito e irreversible: borra el perfil, sus productos y los
// archivos subidos asociados.
func (uc *BusinessUC) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := uc.Businesses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	products, err := uc.Products.ListByBusiness(ctx, id, "created_at desc")
	if err != nil {
		return err
	}
	if err := uc.Businesses.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.Products.DeleteByBusiness(ctx, id); err != nil {
		log.Error().Err(err).Str("business_id", id.String()).Msg("borrar productos del negocio")
	}
	uc.removeFile(ctx, b.LogoURL)
	uc.removeFile(ctx, b.HeroImageURL)
	for _, p := range products {
		uc.removeFile(ctx, p.ImageURL)
		for _, img := range p.Images {
			uc.removeFile(ctx, img)
		}
	}
	return nil
}

func (uc *BusinessUC) removeFile(ctx context.Context, path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := uc.Storage.Remove(ctx, path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("borrar archivo")
	}
}
