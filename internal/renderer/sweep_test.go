package renderer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type fakeDocRepo struct {
	filenames []string
}

func (f *fakeDocRepo) Save(ctx context.Context, d *domain.GeneratedDocument) error { return nil }
func (f *fakeDocRepo) FindByFilename(ctx context.Context, name string) (*domain.GeneratedDocument, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeDocRepo) ListFilenames(ctx context.Context) ([]string, error) {
	return f.filenames, nil
}

func writeAged(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	old := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, old, old))
}

func TestSweepRemovesOrphansRespectsLedgerAndGrace(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "kept_catalog_111.pdf", 3*time.Hour)    // en el ledger
	writeAged(t, dir, "orphan_catalog_222.pdf", 3*time.Hour)  // huérfano viejo
	writeAged(t, dir, "partial_brochure_3.pdf.tmp", 2*time.Hour)
	writeAged(t, dir, "fresh_brochure_444.pdf", time.Minute)  // huérfano reciente
	writeAged(t, dir, "notes.txt", 5*time.Hour)               // extensión ajena

	s := NewSweeper(dir, &fakeDocRepo{filenames: []string{"kept_catalog_111.pdf"}})
	removed, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	for name, want := range map[string]bool{
		"kept_catalog_111.pdf":       true,
		"orphan_catalog_222.pdf":     false,
		"partial_brochure_3.pdf.tmp": false,
		"fresh_brochure_444.pdf":     true,
		"notes.txt":                  true,
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		if want {
			assert.NoError(t, err, name)
		} else {
			assert.True(t, os.IsNotExist(err), name)
		}
	}
}
