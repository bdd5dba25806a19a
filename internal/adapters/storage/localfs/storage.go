// Package localfs guarda los archivos subidos en disco local, servidos como
// estáticos bajo /uploads/. Backend único elegido por deployment.
package localfs

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type Storage struct {
	root string // directorio en disco, ej. "uploads"
}

func New(root string) *Storage {
	_ = os.MkdirAll(root, 0o755)
	return &Storage{root: root}
}

// Save escribe el archivo bajo root/dir/ y devuelve la referencia
// root-relativa que se guarda en la base (ej. "/uploads/logos/x.png").
func (s *Storage) Save(ctx context.Context, dir, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full := filepath.Join(s.root, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(full, filename), data, 0o644); err != nil {
		return "", err
	}
	return "/" + path.Join("uploads", dir, filename), nil
}

// Remove borra el archivo referenciado. Paths que no apuntan a uploads se
// ignoran en silencio: nunca borramos fuera del root.
func (s *Storage) Remove(ctx context.Context, storedPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sp := strings.TrimPrefix(strings.TrimSpace(storedPath), "/")
	if !strings.HasPrefix(sp, "uploads/") || strings.Contains(sp, "..") {
		return nil
	}
	p := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(sp, "uploads/")))
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	return os.Remove(p)
}

func (s *Storage) PublicURL(storedPath string) string { return storedPath }

// Root expone el directorio en disco para montar el file server.
func (s *Storage) Root() string { return s.root }
