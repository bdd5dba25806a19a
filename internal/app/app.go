package app

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/vitrina-app/vitrina/internal/adapters/ai"
	"github.com/vitrina-app/vitrina/internal/adapters/httpserver"
	"github.com/vitrina-app/vitrina/internal/adapters/repo/postgres"
	"github.com/vitrina-app/vitrina/internal/adapters/storage/localfs"
	"github.com/vitrina-app/vitrina/internal/domain"
	"github.com/vitrina-app/vitrina/internal/renderer"
	"github.com/vitrina-app/vitrina/internal/usecase"
)

type App struct {
	DB         *gorm.DB
	AuthUC     *usecase.AuthUC
	BusinessUC *usecase.BusinessUC
	ProductUC  *usecase.ProductUC
	RenderUC   *usecase.RenderUC
	Storage    domain.FileStorage
	PDF        *renderer.PDFGenerator
	Sweeper    *renderer.Sweeper

	uploadsDir string
}

func NewApp(db *gorm.DB) (*App, error) {
	businessRepo := postgres.NewBusinessRepo(db)
	productRepo := postgres.NewProductRepo(db)
	userRepo := postgres.NewUserRepo(db)
	docRepo := postgres.NewDocumentRepo(db)

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "uploads"
	}
	_ = os.MkdirAll(storageDir, 0755)
	storage := localfs.New(storageDir)

	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "generated"
	}
	_ = os.MkdirAll(outputDir, 0755)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	var enhancer domain.ContentEnhancer
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		enhancer = ai.NewEnhancer(key)
	}

	pdf := renderer.NewPDFGenerator(renderer.PDFConfig{
		OutputDir:   outputDir,
		Workers:     envInt64("PDF_WORKERS", 0),
		WaitTimeout: envDuration("PDF_WAIT_TIMEOUT"),
		PageTimeout: envDuration("PDF_TIMEOUT"),
	})

	engine := renderer.NewEngine(renderer.NewFSStore())
	resolver := renderer.NewAssetResolver(baseURL)

	app := &App{DB: db, Storage: storage, PDF: pdf, uploadsDir: storageDir}
	app.AuthUC = usecase.NewAuthUC(userRepo, secret)
	app.BusinessUC = &usecase.BusinessUC{
		Businesses: businessRepo,
		Products:   productRepo,
		Storage:    storage,
		Enhancer:   enhancer,
	}
	app.ProductUC = &usecase.ProductUC{
		Products:   productRepo,
		Businesses: businessRepo,
		Storage:    storage,
	}
	app.RenderUC = &usecase.RenderUC{
		Businesses: businessRepo,
		Products:   productRepo,
		Documents:  docRepo,
		Engine:     engine,
		Resolver:   resolver,
		PDF:        pdf,
		OutputDir:  outputDir,
	}
	app.Sweeper = renderer.NewSweeper(outputDir, docRepo)
	app.Sweeper.Start()

	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.AuthUC, a.BusinessUC, a.ProductUC, a.RenderUC, a.Storage, a.uploadsDir)
}

func (a *App) Migrate() error {
	return a.DB.AutoMigrate(
		&domain.User{},
		&domain.Business{},
		&domain.Product{},
		&domain.GeneratedDocument{},
	)
}

// Close apaga el navegador compartido y el sweep de archivos huérfanos.
func (a *App) Close() {
	a.Sweeper.Stop()
	_ = a.PDF.Close()
}

func envInt64(key string, def int64) int64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	}
	return def
}

func envDuration(key string) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return 0
}
