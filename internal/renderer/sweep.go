package renderer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-app/vitrina/internal/domain"
)

// Sweeper limpia el directorio de salida: un PDF sin fila en el ledger es un
// export que falló a mitad de camino (o un .tmp que quedó colgado). No hay
// garantía transaccional en la escritura, el sweep periódico la reemplaza.
type Sweeper struct {
	dir   string
	docs  domain.DocumentRepo
	grace time.Duration
	cron  *cron.Cron
}

func NewSweeper(dir string, docs domain.DocumentRepo) *Sweeper {
	return &Sweeper{dir: dir, docs: docs, grace: time.Hour, cron: cron.New()}
}

func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		n, err := s.Sweep(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("sweep de documentos")
			return
		}
		if n > 0 {
			log.Info().Int("removed", n).Msg("documentos huérfanos barridos")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() { s.cron.Stop() }

// Sweep borra archivos del directorio de salida sin registro en el ledger y
// más viejos que la ventana de gracia. Nunca toca documentos registrados.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	known, err := s.docs.ListFilenames(ctx)
	if err != nil {
		return 0, err
	}
	keep := make(map[string]struct{}, len(known))
	for _, f := range known {
		keep[f] = struct{}{}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".pdf") && !strings.HasSuffix(name, ".tmp") {
			continue
		}
		if _, ok := keep[name]; ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < s.grace {
			continue
		}
		if os.Remove(filepath.Join(s.dir, name)) == nil {
			removed++
		}
	}
	return removed, nil
}
