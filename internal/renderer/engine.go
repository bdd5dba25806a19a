package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"

	"github.com/vitrina-app/vitrina/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateStore es la fuente read-only de layouts. Va inyectado en el engine
// para poder sustituirlo por un store falso en tests.
type TemplateStore interface {
	Source(name string) (string, error)
	Names() []string
}

// FSStore sirve los layouts embebidos en el binario.
type FSStore struct {
	fsys fs.FS
}

func NewFSStore() *FSStore { return &FSStore{fsys: templatesFS} }

func (s *FSStore) Source(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return "", fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}
	b, err := fs.ReadFile(s.fsys, "templates/"+name+".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}
	return string(b), nil
}

func (s *FSStore) Names() []string {
	entries, err := fs.ReadDir(s.fsys, "templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".html"))
	}
	sort.Strings(names)
	return names
}

var funcMap = template.FuncMap{
	"price": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
}

// Engine resuelve un nombre de template contra el store y lo renderiza con el
// contexto dado. Función pura de sus entradas y del store.
type Engine struct {
	store TemplateStore
}

func NewEngine(store TemplateStore) *Engine { return &Engine{store: store} }

func (e *Engine) Templates() []string { return e.store.Names() }

// Render devuelve el HTML completo o error: el buffer intermedio garantiza que
// nunca sale HTML sustituido a medias.
func (e *Engine) Render(name string, data any) (string, error) {
	src, err := e.store.Source(name)
	if err != nil {
		return "", err
	}
	t, err := template.New(name).Funcs(funcMap).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrTemplateRender, name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrTemplateRender, name, err)
	}
	return buf.String(), nil
}
