package renderer

import (
	"time"

	"github.com/vitrina-app/vitrina/internal/domain"
)

// Context es la vista efímera que consumen los templates: perfil más
// productos, con todos los assets ya resueltos a URL absoluta. Se arma de
// cero en cada render; mutar el Business de origen después no la afecta.
type Context struct {
	BusinessID   string
	BusinessName string
	Industry     string
	Tagline      string
	Description  string
	About        string
	Pills        []string
	Stats        map[string]string
	Services     []domain.Service
	Email        string
	Phone        string
	Address      string
	LinkedinURL  string
	InstagramURL string
	FacebookURL  string
	BrandColor   string
	LogoURL      string
	HeroImageURL string
	Products     []domain.Product
	Year         int
}

func BuildContext(b *domain.Business, products []domain.Product, res *AssetResolver) *Context {
	ctx := &Context{
		BusinessID:   b.ID.String(),
		BusinessName: b.BusinessName,
		Industry:     b.Industry,
		Tagline:      b.Tagline,
		Description:  b.Description,
		About:        b.AIAbout,
		Pills:        b.AIPills,
		Stats:        b.AIStats,
		Services:     b.Services,
		Email:        b.Email,
		Phone:        b.Phone,
		Address:      b.Address,
		LinkedinURL:  b.LinkedinURL,
		InstagramURL: b.InstagramURL,
		FacebookURL:  b.FacebookURL,
		BrandColor:   b.BrandColor,
		LogoURL:      res.Resolve(b.LogoURL),
		HeroImageURL: res.Resolve(b.HeroImageURL),
		Year:         time.Now().Year(),
	}
	if ctx.BrandColor == "" {
		ctx.BrandColor = domain.DefaultBrandColor
	}
	// p es copia por valor: el slice de origen queda intacto
	for _, p := range products {
		p.ImageURL = res.Resolve(p.ImageURL)
		if len(p.Images) > 0 {
			imgs := make([]string, len(p.Images))
			for i, u := range p.Images {
				imgs[i] = res.Resolve(u)
			}
			p.Images = imgs
		}
		ctx.Products = append(ctx.Products, p)
	}
	return ctx
}
