package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRelativePaths(t *testing.T) {
	r := NewAssetResolver("http://localhost:8080")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading slash", "/uploads/logos/a.png", "http://localhost:8080/uploads/logos/a.png"},
		{"no leading slash", "uploads/logos/a.png", "http://localhost:8080/uploads/logos/a.png"},
		{"double slash collapsed", "//uploads/hero/b.jpg", "http://localhost:8080/uploads/hero/b.jpg"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.in))
		})
	}
}

func TestResolveAbsoluteURLsUntouched(t *testing.T) {
	r := NewAssetResolver("http://localhost:8080")

	for _, u := range []string{
		"http://cdn.example.com/img.png",
		"https://cdn.example.com/img.png",
	} {
		assert.Equal(t, u, r.Resolve(u))
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := NewAssetResolver("https://vitrina.example.com/")

	once := r.Resolve("/uploads/products/x.webp")
	twice := r.Resolve(once)
	assert.Equal(t, once, twice)
	assert.False(t, strings.Contains(twice, "//uploads"), "base y path se unen con un solo separador")
}

func TestResolverTrimsBaseSlash(t *testing.T) {
	with := NewAssetResolver("http://host:9000/")
	without := NewAssetResolver("http://host:9000")
	assert.Equal(t, without.Resolve("a/b.png"), with.Resolve("a/b.png"))
}
