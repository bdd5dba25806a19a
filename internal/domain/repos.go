package domain

import (
	"context"

	"github.com/google/uuid"
)

type BusinessRepo interface {
	Save(ctx context.Context, b *Business) error
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Business, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// ListByBusiness devuelve los productos ordenados según orderBy
	// ("category" para catálogos, "created_at desc" para el dashboard).
	ListByBusiness(ctx context.Context, businessID uuid.UUID, orderBy string) ([]Product, error)
	CountByBusiness(ctx context.Context, businessIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error
}

type UserRepo interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type DocumentRepo interface {
	Save(ctx context.Context, d *GeneratedDocument) error
	FindByFilename(ctx context.Context, filename string) (*GeneratedDocument, error)
	ListFilenames(ctx context.Context) ([]string, error)
}

// FileStorage abstrae el backend de archivos subidos (logos, heros, productos).
type FileStorage interface {
	Save(ctx context.Context, dir, filename string, data []byte) (string, error)
	Remove(ctx context.Context, storedPath string) error
	PublicURL(storedPath string) string
}
