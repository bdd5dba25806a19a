package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemove(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	ref, err := s.Save(context.Background(), "logos", "a.png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/logos/a.png", ref)

	data, err := os.ReadFile(filepath.Join(root, "logos", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	require.NoError(t, s.Remove(context.Background(), ref))
	_, err = os.Stat(filepath.Join(root, "logos", "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveIgnoresForeignPaths(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	decoy := filepath.Join(root, "decoy.txt")
	require.NoError(t, os.WriteFile(decoy, []byte("x"), 0o644))

	// fuera de /uploads, con traversal o inexistente: siempre no-op sin error
	assert.NoError(t, s.Remove(context.Background(), "/etc/passwd"))
	assert.NoError(t, s.Remove(context.Background(), "/uploads/../decoy.txt"))
	assert.NoError(t, s.Remove(context.Background(), "/uploads/logos/missing.png"))
	assert.NoError(t, s.Remove(context.Background(), ""))

	_, err := os.Stat(decoy)
	assert.NoError(t, err)
}

func TestSaveCreatesNestedDirs(t *testing.T) {
	s := New(t.TempDir())
	ref, err := s.Save(context.Background(), "products", "1-2.webp", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/1-2.webp", ref)
}
