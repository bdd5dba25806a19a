package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-app/vitrina/internal/domain"
	"github.com/vitrina-app/vitrina/internal/usecase"
)

type Server struct {
	mux        *http.ServeMux
	auth       *usecase.AuthUC
	businesses *usecase.BusinessUC
	products   *usecase.ProductUC
	render     *usecase.RenderUC
	storage    domain.FileStorage
	uploadsDir string
}

func New(auth *usecase.AuthUC, b *usecase.BusinessUC, p *usecase.ProductUC, r *usecase.RenderUC, storage domain.FileStorage, uploadsDir string) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		auth:       auth,
		businesses: b,
		products:   p,
		render:     r,
		storage:    storage,
		uploadsDir: uploadsDir,
	}
	s.routes()
	return Chain(s.mux, RequestID, Recovery, Logging)
}

func (s *Server) routes() {
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))

	s.mux.HandleFunc("/api/auth/", s.handleAuth)

	s.mux.HandleFunc("/api/business", s.handleBusinessCollection)
	s.mux.HandleFunc("/api/business/", s.handleBusinessByPath)

	s.mux.HandleFunc("/api/products", s.handleProductCollection)
	s.mux.HandleFunc("/api/products/", s.handleProductByPath)

	s.mux.HandleFunc("/api/preview/", s.handlePreview)
	s.mux.HandleFunc("/api/generate-brochure/", s.handleGenerateBrochure)
	s.mux.HandleFunc("/api/generate-catalog/", s.handleGenerateCatalog)
	s.mux.HandleFunc("/api/download/", s.handleDownload)
	s.mux.HandleFunc("/api/templates", s.handleTemplates)

	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Vitrina backend is running!"))
}

// GET /api/preview/{business_id}/{template_name}
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/preview/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeJSON(w, 400, map[string]any{"error": "business_id and template_name are required"})
		return
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
		return
	}
	html, err := s.render.Preview(r.Context(), id, parts[1])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, 404, map[string]any{"error": "Business not found"})
			return
		}
		log.Error().Err(err).Str("template", parts[1]).Msg("preview")
		writeJSON(w, 500, map[string]any{"error": "Failed to render preview"})
		return
	}
	// el contenido puede cambiar entre llamadas: nunca cachear
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// POST /api/generate-brochure/{business_id}/{template_name}
func (s *Server) handleGenerateBrochure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/generate-brochure/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeJSON(w, 400, map[string]any{"error": "business_id and template_name are required"})
		return
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
		return
	}
	doc, err := s.render.GenerateBrochure(r.Context(), id, parts[1])
	if err != nil {
		s.writeRenderError(w, err, "brochure")
		return
	}
	writeJSON(w, 201, map[string]any{
		"message":      "Brochure generated successfully",
		"filename":     doc.Filename,
		"download_url": "/api/download/" + doc.Filename,
	})
}

// POST /api/generate-catalog/{business_id}
func (s *Server) handleGenerateCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/generate-catalog/"), "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
		return
	}
	doc, err := s.render.GenerateCatalog(r.Context(), id)
	if err != nil {
		s.writeRenderError(w, err, "catalog")
		return
	}
	writeJSON(w, 201, map[string]any{
		"message":      "Catalog generated successfully",
		"filename":     doc.Filename,
		"download_url": "/api/download/" + doc.Filename,
	})
}

func (s *Server) writeRenderError(w http.ResponseWriter, err error, kind string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
	case errors.Is(err, domain.ErrEmptyCatalog):
		writeJSON(w, 400, map[string]any{"error": "No products found for this business"})
	case errors.Is(err, domain.ErrRendererBusy):
		writeJSON(w, 503, map[string]any{"error": "Renderer busy, try again later"})
	default:
		log.Error().Err(err).Str("kind", kind).Msg("generación de documento")
		writeJSON(w, 500, map[string]any{"error": "Failed to generate " + kind})
	}
}

// GET /api/download/{filename}
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	filename := strings.TrimPrefix(r.URL.Path, "/api/download/")
	path, err := s.render.DocumentPath(filename)
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "File not found"})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}

// GET /api/templates
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	names := s.render.Templates()
	writeJSON(w, 200, map[string]any{"templates": names, "count": len(names)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
