package renderer

import "strings"

// AssetResolver normaliza referencias de imágenes guardadas (path relativo al
// root o URL absoluta) a URLs absolutas usables dentro del HTML renderizado.
// Es un transform de strings puro: sin red, sin errores.
type AssetResolver struct {
	base string
}

func NewAssetResolver(baseURL string) *AssetResolver {
	return &AssetResolver{base: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// Resolve es determinístico e idempotente: resolver una URL ya resuelta no la
// cambia. Vacío devuelve vacío y el template muestra un placeholder.
func (r *AssetResolver) Resolve(path string) string {
	s := strings.TrimSpace(path)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return r.base + "/" + strings.TrimLeft(s, "/")
}
