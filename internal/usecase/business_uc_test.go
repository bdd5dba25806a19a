package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type fakeStorage struct {
	removed []string
}

func (f *fakeStorage) Save(ctx context.Context, dir, filename string, data []byte) (string, error) {
	return "/uploads/" + dir + "/" + filename, nil
}
func (f *fakeStorage) Remove(ctx context.Context, storedPath string) error {
	f.removed = append(f.removed, storedPath)
	return nil
}
func (f *fakeStorage) PublicURL(p string) string { return p }

type fakeEnhancer struct {
	content *domain.EnhancedContent
	err     error
	calls   int
}

func (f *fakeEnhancer) GenerateAll(ctx context.Context, in domain.EnhanceInput) (*domain.EnhancedContent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}

func newBusinessFixture() (*BusinessUC, *fakeBusinessRepo, *fakeProductRepo, *fakeStorage) {
	businesses := &fakeBusinessRepo{byID: map[uuid.UUID]*domain.Business{}}
	products := &fakeProductRepo{byBusiness: map[uuid.UUID][]domain.Product{}}
	storage := &fakeStorage{}
	return &BusinessUC{Businesses: businesses, Products: products, Storage: storage}, businesses, products, storage
}

func TestCreateBusinessDefaults(t *testing.T) {
	uc, _, _, _ := newBusinessFixture()
	b := &domain.Business{UserID: uuid.New(), BusinessName: "Acme Yoga", Industry: "wellness"}

	require.NoError(t, uc.Create(context.Background(), b, []string{"Clases", "Retiros"}, false))

	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, domain.DefaultTemplate, b.TemplateName)
	assert.Equal(t, domain.DefaultBrandColor, b.BrandColor)
	assert.Equal(t, "Professional wellness services", b.Description)
	assert.Equal(t, "Quality wellness You Can Trust", b.Tagline)
	assert.Equal(t, "Acme Yoga delivers exceptional wellness services with professionalism and dedication.", b.AIAbout)
	assert.Equal(t, []string{"Trusted", "Professional", "Reliable"}, b.AIPills)
	require.Len(t, b.Services, 2)
	assert.Equal(t, "Clases", b.Services[0].Name)
	assert.Equal(t, "Professional clases services tailored to your needs.", b.Services[0].Description)
}

func TestCreateBusinessRequiresName(t *testing.T) {
	uc, _, _, _ := newBusinessFixture()
	err := uc.Create(context.Background(), &domain.Business{UserID: uuid.New()}, nil, false)
	assert.Error(t, err)
}

func TestCreateBusinessWithAI(t *testing.T) {
	uc, _, _, _ := newBusinessFixture()
	enh := &fakeEnhancer{content: &domain.EnhancedContent{
		Tagline:         "Flow with us",
		HeroDescription: "Yoga for every body",
		About:           "About text",
		Pills:           []string{"Zen"},
		Services:        []domain.Service{{Name: "Clases", Description: "desc"}},
		Stats:           map[string]string{"clients": "500+"},
	}}
	uc.Enhancer = enh

	b := &domain.Business{UserID: uuid.New(), BusinessName: "Acme Yoga", Industry: "wellness"}
	require.NoError(t, uc.Create(context.Background(), b, []string{"Clases"}, true))

	assert.Equal(t, 1, enh.calls)
	assert.Equal(t, "Flow with us", b.Tagline)
	assert.Equal(t, "Yoga for every body", b.Description)
	assert.Equal(t, "About text", b.AIAbout)
	assert.Equal(t, []string{"Zen"}, b.AIPills)
	assert.Equal(t, "500+", b.AIStats["clients"])
}

func TestCreateBusinessAIFailureFallsBack(t *testing.T) {
	uc, _, _, _ := newBusinessFixture()
	uc.Enhancer = &fakeEnhancer{err: errors.New("rate limited")}

	b := &domain.Business{UserID: uuid.New(), BusinessName: "Acme Yoga", Industry: "wellness"}
	require.NoError(t, uc.Create(context.Background(), b, []string{"Clases"}, true), "una falla de AI no tira el alta")
	assert.Equal(t, "Quality wellness You Can Trust", b.Tagline)
	assert.Equal(t, []string{"Trusted", "Professional", "Reliable"}, b.AIPills)
}

func TestCreateBusinessAISkippedWhenDisabled(t *testing.T) {
	uc, _, _, _ := newBusinessFixture()
	enh := &fakeEnhancer{content: &domain.EnhancedContent{Tagline: "X"}}
	uc.Enhancer = enh

	b := &domain.Business{UserID: uuid.New(), BusinessName: "Acme", Industry: "retail"}
	require.NoError(t, uc.Create(context.Background(), b, nil, false))
	assert.Equal(t, 0, enh.calls)
}

func TestDeleteBusinessCascades(t *testing.T) {
	uc, businesses, products, storage := newBusinessFixture()
	b := &domain.Business{
		ID:           uuid.New(),
		BusinessName: "Acme",
		LogoURL:      "/uploads/logos/l.png",
		HeroImageURL: "/uploads/hero/h.png",
	}
	businesses.byID[b.ID] = b
	products.byBusiness[b.ID] = []domain.Product{{
		ID:       uuid.New(),
		ImageURL: "/uploads/products/p.png",
		Images:   []string{"/uploads/products/p.png", "/uploads/products/p2.png"},
	}}

	require.NoError(t, uc.Delete(context.Background(), b.ID))
	assert.Empty(t, businesses.byID)
	assert.Contains(t, storage.removed, "/uploads/logos/l.png")
	assert.Contains(t, storage.removed, "/uploads/hero/h.png")
	assert.Contains(t, storage.removed, "/uploads/products/p2.png")
}

func TestDeleteBusinessNotFound(t *testing.T) {
	uc, _, _, _ := newBusinessFixture()
	err := uc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
