package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyCatalog     = errors.New("business has no products")
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateRender   = errors.New("template rendering failed")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrRendererBusy     = errors.New("renderer at capacity")
	ErrInvalidPrice     = errors.New("price must be >= 0")
	ErrEmailTaken       = errors.New("email already exists")
	ErrBadCredentials   = errors.New("invalid email or password")
)
