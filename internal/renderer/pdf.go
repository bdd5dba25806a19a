package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/vitrina-app/vitrina/internal/domain"
)

// pdfEngine abstrae el navegador para poder testear el generador sin Chrome.
type pdfEngine interface {
	Convert(ctx context.Context, html string) ([]byte, error)
	Close() error
}

type PDFConfig struct {
	OutputDir string
	// Workers limita cuántos exports corren a la vez. Cada export levanta un
	// proceso de Chrome, así que este es el guard de recursos más importante
	// de todo el servicio.
	Workers int64
	// WaitTimeout acota cuánto bloquea un pedido esperando slot antes de
	// fallar con ErrRendererBusy. Nunca se espera indefinidamente.
	WaitTimeout time.Duration
	PageTimeout time.Duration
	// Quiescence es la ventana sin tráfico de red que se espera antes de
	// exportar, para que no salgan imágenes o fuentes a medio cargar.
	Quiescence time.Duration
}

func (c *PDFConfig) defaults() {
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.WaitTimeout <= 0 {
		c.WaitTimeout = 30 * time.Second
	}
	if c.PageTimeout <= 0 {
		c.PageTimeout = 60 * time.Second
	}
	if c.Quiescence <= 0 {
		c.Quiescence = 500 * time.Millisecond
	}
}

// PDFGenerator exporta HTML como PDF A4 sin márgenes al directorio de salida.
type PDFGenerator struct {
	engine pdfEngine
	outDir string
	sem    *semaphore.Weighted
	wait   time.Duration
}

func NewPDFGenerator(cfg PDFConfig) *PDFGenerator {
	cfg.defaults()
	return &PDFGenerator{
		engine: newRodEngine(cfg.PageTimeout, cfg.Quiescence),
		outDir: cfg.OutputDir,
		sem:    semaphore.NewWeighted(cfg.Workers),
		wait:   cfg.WaitTimeout,
	}
}

func (g *PDFGenerator) Generate(ctx context.Context, html, baseName string, kind domain.DocumentKind) (*domain.GeneratedDocument, error) {
	waitCtx, cancel := context.WithTimeout(ctx, g.wait)
	defer cancel()
	if err := g.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.ErrRendererBusy
	}
	defer g.sem.Release(1)

	pdf, err := g.engine.Convert(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPDFGeneration, err)
	}

	filename := DocumentFilename(baseName, kind)
	finalPath := filepath.Join(g.outDir, filename)
	tmpPath := finalPath + ".tmp"
	// escribir a .tmp y renombrar: un export fallido no deja un .pdf parcial
	if err := os.WriteFile(tmpPath, pdf, 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", domain.ErrPDFGeneration, filename, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: %v", domain.ErrPDFGeneration, err)
	}

	return &domain.GeneratedDocument{
		Kind:        kind,
		Filename:    filename,
		StoragePath: finalPath,
	}, nil
}

// Close libera el navegador. Sin esto queda un proceso de Chrome colgado.
func (g *PDFGenerator) Close() error { return g.engine.Close() }

// DocumentFilename translitera el nombre a [a-z0-9_] y agrega timestamp en
// milisegundos más un componente aleatorio: el timestamp solo no alcanza
// bajo pedidos concurrentes.
func DocumentFilename(baseName string, kind domain.DocumentKind) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(baseName))
	if strings.Trim(safe, "_") == "" {
		safe = "document"
	}
	return fmt.Sprintf("%s_%s_%d%03d.pdf", safe, kind, time.Now().UnixMilli(), rand.Intn(1000))
}
