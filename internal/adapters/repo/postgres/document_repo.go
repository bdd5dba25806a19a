package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type DocumentRepo struct{ db *gorm.DB }

func NewDocumentRepo(db *gorm.DB) *DocumentRepo { return &DocumentRepo{db: db} }

func (r *DocumentRepo) Save(ctx context.Context, d *domain.GeneratedDocument) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepo) FindByFilename(ctx context.Context, filename string) (*domain.GeneratedDocument, error) {
	var d domain.GeneratedDocument
	if err := r.db.WithContext(ctx).First(&d, "filename = ?", filename).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) ListFilenames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&domain.GeneratedDocument{}).
		Pluck("filename", &names).Error
	return names, err
}
