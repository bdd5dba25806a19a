package domain

import "context"

type EnhanceInput struct {
	BusinessName string
	Industry     string
	Description  string
	Services     []string
}

type EnhancedContent struct {
	Tagline         string            `json:"tagline"`
	HeroDescription string            `json:"hero_description"`
	About           string            `json:"about"`
	Pills           []string          `json:"pills"`
	Services        []Service         `json:"services"`
	Stats           map[string]string `json:"stats"`
}

// ContentEnhancer genera copy de marketing para el perfil. Las fallas acá no
// son fatales: el caller sigue con el contenido manual.
type ContentEnhancer interface {
	GenerateAll(ctx context.Context, in EnhanceInput) (*EnhancedContent, error)
}
