package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-app/vitrina/internal/domain"
)

// fakeStore sirve templates desde un map, sin tocar el FS embebido.
type fakeStore struct {
	sources map[string]string
}

func (f *fakeStore) Source(name string) (string, error) {
	src, ok := f.sources[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}
	return src, nil
}

func (f *fakeStore) Names() []string {
	names := make([]string, 0, len(f.sources))
	for n := range f.sources {
		names = append(names, n)
	}
	return names
}

func testBusiness() *domain.Business {
	return &domain.Business{
		ID:           uuid.New(),
		BusinessName: "Acme Yoga",
		Industry:     "wellness",
		Tagline:      "Breathe better",
		BrandColor:   "#112233",
		LogoURL:      "/uploads/logos/acme.png",
	}
}

func TestRenderSubstitutesContext(t *testing.T) {
	store := &fakeStore{sources: map[string]string{
		"modern": `<h1>{{.BusinessName}}</h1><img src="{{.LogoURL}}"><p>{{.Tagline}}</p>`,
	}}
	e := NewEngine(store)
	res := NewAssetResolver("http://localhost:8080")

	html, err := e.Render("modern", BuildContext(testBusiness(), nil, res))
	require.NoError(t, err)

	assert.Contains(t, html, "Acme Yoga")
	assert.Contains(t, html, "http://localhost:8080/uploads/logos/acme.png")
	assert.Contains(t, html, "Breathe better")
}

func TestRenderIsPure(t *testing.T) {
	store := &fakeStore{sources: map[string]string{
		"modern": `{{.BusinessName}} / {{.BrandColor}}`,
	}}
	e := NewEngine(store)
	ctx := BuildContext(testBusiness(), nil, NewAssetResolver("http://localhost:8080"))

	first, err := e.Render("modern", ctx)
	require.NoError(t, err)
	second, err := e.Render("modern", ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "misma entrada, mismos bytes")
}

func TestRenderUnknownTemplate(t *testing.T) {
	e := NewEngine(&fakeStore{sources: map[string]string{}})
	_, err := e.Render("nope", &Context{})
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	store := NewFSStore()
	for _, name := range []string{"../secrets", "a/b", `a\b`, "modern.html", ""} {
		_, err := store.Source(name)
		assert.ErrorIs(t, err, domain.ErrTemplateNotFound, name)
	}
}

func TestFSStoreListsEmbeddedTemplates(t *testing.T) {
	names := NewFSStore().Names()
	assert.Contains(t, names, "modern")
	assert.Contains(t, names, "catalog")
	assert.Contains(t, names, "luxury")
	assert.Contains(t, names, "minimal")
	assert.Contains(t, names, "professional")
}

func TestCatalogEmptyProductsRendersNoFragments(t *testing.T) {
	store := &fakeStore{sources: map[string]string{
		"catalog": `{{range .Products}}<div class="product">{{.ProductName}}</div>{{end}}`,
	}}
	e := NewEngine(store)
	html, err := e.Render("catalog", BuildContext(testBusiness(), nil, NewAssetResolver("http://x")))
	require.NoError(t, err)
	assert.NotContains(t, html, `class="product"`)
}

func TestBuildContextDoesNotMutateSource(t *testing.T) {
	b := testBusiness()
	products := []domain.Product{{
		ID:          uuid.New(),
		ProductName: "Mat",
		ImageURL:    "/uploads/products/mat.png",
		Images:      []string{"/uploads/products/mat.png", "/uploads/products/mat2.png"},
	}}
	ctx := BuildContext(b, products, NewAssetResolver("http://localhost:8080"))

	assert.True(t, strings.HasPrefix(ctx.Products[0].ImageURL, "http://"))
	assert.True(t, strings.HasPrefix(ctx.Products[0].Images[1], "http://"))
	// los originales quedan relativos
	assert.Equal(t, "/uploads/products/mat.png", products[0].ImageURL)
	assert.Equal(t, "/uploads/products/mat2.png", products[0].Images[1])
	assert.Equal(t, "/uploads/logos/acme.png", b.LogoURL)
}

func TestBuildContextDefaultBrandColor(t *testing.T) {
	b := testBusiness()
	b.BrandColor = ""
	ctx := BuildContext(b, nil, NewAssetResolver("http://x"))
	assert.Equal(t, domain.DefaultBrandColor, ctx.BrandColor)
}

func TestEmbeddedTemplatesRender(t *testing.T) {
	e := NewEngine(NewFSStore())
	res := NewAssetResolver("http://localhost:8080")
	b := testBusiness()
	b.Services = []domain.Service{{Name: "Clases", Description: "Clases grupales"}}
	b.AIPills = []string{"Trusted"}
	products := []domain.Product{{ID: uuid.New(), ProductName: "Mat", Price: 25, Category: "Gear"}}

	for _, name := range NewFSStore().Names() {
		html, err := e.Render(name, BuildContext(b, products, res))
		require.NoError(t, err, name)
		assert.Contains(t, html, "Acme Yoga", name)
	}
}

func TestPriceHelper(t *testing.T) {
	store := &fakeStore{sources: map[string]string{
		"catalog": `{{range .Products}}{{price .Price}}{{end}}`,
	}}
	e := NewEngine(store)
	products := []domain.Product{{ID: uuid.New(), ProductName: "Mat", Price: 19.5}}
	html, err := e.Render("catalog", BuildContext(testBusiness(), products, NewAssetResolver("http://x")))
	require.NoError(t, err)
	assert.Contains(t, html, "$19.50")
}
