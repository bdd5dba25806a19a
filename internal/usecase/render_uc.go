package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-app/vitrina/internal/domain"
	"github.com/vitrina-app/vitrina/internal/renderer"
)

// DocumentGenerator es el exportador HTML→PDF; interface para poder testear
// el orquestador sin levantar Chrome.
type DocumentGenerator interface {
	Generate(ctx context.Context, html, baseName string, kind domain.DocumentKind) (*domain.GeneratedDocument, error)
}

// RenderUC orquesta el pipeline de render: fetch → resolver assets → template
// → (export PDF). Sin retries automáticos en esta capa.
type RenderUC struct {
	Businesses domain.BusinessRepo
	Products   domain.ProductRepo
	Documents  domain.DocumentRepo
	Engine     *renderer.Engine
	Resolver   *renderer.AssetResolver
	PDF        DocumentGenerator
	OutputDir  string
}

// Preview renderiza el perfil como HTML en modo entidad única.
func (uc *RenderUC) Preview(ctx context.Context, businessID uuid.UUID, templateName string) (string, error) {
	b, err := uc.Businesses.FindByID(ctx, businessID)
	if err != nil {
		return "", err
	}
	rctx := renderer.BuildContext(b, nil, uc.Resolver)
	return uc.Engine.Render(templateName, rctx)
}

func (uc *RenderUC) GenerateBrochure(ctx context.Context, businessID uuid.UUID, templateName string) (*domain.GeneratedDocument, error) {
	b, err := uc.Businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	rctx := renderer.BuildContext(b, nil, uc.Resolver)
	html, err := uc.Engine.Render(templateName, rctx)
	if err != nil {
		return nil, err
	}
	doc, err := uc.PDF.Generate(ctx, html, b.BusinessName, domain.DocumentBrochure)
	if err != nil {
		return nil, err
	}
	doc.BusinessID = b.ID
	doc.TemplateName = templateName
	uc.saveLedger(ctx, doc)
	return doc, nil
}

func (uc *RenderUC) GenerateCatalog(ctx context.Context, businessID uuid.UUID) (*domain.GeneratedDocument, error) {
	b, err := uc.Businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	products, err := uc.Products.ListByBusiness(ctx, b.ID, "category")
	if err != nil {
		return nil, err
	}
	// cortar acá: no vale la pena levantar un browser para un catálogo vacío
	if len(products) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	rctx := renderer.BuildContext(b, products, uc.Resolver)
	html, err := uc.Engine.Render("catalog", rctx)
	if err != nil {
		return nil, err
	}
	doc, err := uc.PDF.Generate(ctx, html, b.BusinessName, domain.DocumentCatalog)
	if err != nil {
		return nil, err
	}
	doc.BusinessID = b.ID
	doc.TemplateName = "catalog"
	uc.saveLedger(ctx, doc)
	return doc, nil
}

// saveLedger registra el documento. Si falla, el archivo queda igual
// disponible para descarga hasta que el sweep lo levante; mejor eso que
// tirar un export que ya salió bien.
func (uc *RenderUC) saveLedger(ctx context.Context, doc *domain.GeneratedDocument) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if err := uc.Documents.Save(ctx, doc); err != nil {
		log.Error().Err(err).Str("filename", doc.Filename).Msg("guardar ledger de documento")
	}
}

// DocumentPath resuelve un filename generado a su path en disco.
func (uc *RenderUC) DocumentPath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return "", domain.ErrNotFound
	}
	p := filepath.Join(uc.OutputDir, filename)
	if _, err := os.Stat(p); err != nil {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (uc *RenderUC) Templates() []string { return uc.Engine.Templates() }
