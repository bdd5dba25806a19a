package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/vitrina-app/vitrina/internal/domain"
)

// GET  /api/business        -> perfiles del usuario autenticado
// POST /api/business        -> alta (multipart: campos + logo/hero_image)
func (s *Server) handleBusinessCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBusinesses(w, r)
	case http.MethodPost:
		s.createBusiness(w, r)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

// GET/PUT/DELETE /api/business/{id}
// GET            /api/business/user/{user_id}
// GET            /api/business/{id}/products/export
func (s *Server) handleBusinessByPath(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/business/"), "/"), "/")
	if parts[0] == "user" && len(parts) == 2 {
		if r.Method != http.MethodGet {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		s.listBusinessesOf(w, r, parts[1])
		return
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
		return
	}
	if len(parts) == 3 && parts[1] == "products" && parts[2] == "export" {
		if r.Method != http.MethodGet {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		s.exportProducts(w, r, id)
		return
	}
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.getBusiness(w, r, id)
	case http.MethodPut:
		s.updateBusiness(w, r, id)
	case http.MethodDelete:
		s.deleteBusiness(w, r, id)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) createBusiness(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeJSON(w, 400, map[string]any{"error": "Invalid multipart form"})
		return
	}
	b := &domain.Business{UserID: userID}
	fillBusinessFromForm(b, r)
	if strings.TrimSpace(b.BusinessName) == "" {
		writeJSON(w, 400, map[string]any{"error": "business_name is required"})
		return
	}

	if url, err := s.saveFormFile(w, r, "logo", "logos"); err != nil {
		return
	} else if url != "" {
		b.LogoURL = url
	}
	if url, err := s.saveFormFile(w, r, "hero_image", "hero"); err != nil {
		return
	} else if url != "" {
		b.HeroImageURL = url
	}

	useAI := r.FormValue("use_ai") == "true"
	services := parseServices(r.FormValue("services"))
	if err := s.businesses.Create(r.Context(), b, services, useAI); err != nil {
		log.Error().Err(err).Msg("alta de negocio")
		writeJSON(w, 500, map[string]any{"error": "Failed to create business"})
		return
	}
	writeJSON(w, 201, map[string]any{"business": b})
}

func (s *Server) listBusinesses(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	list, err := s.businesses.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("listar negocios")
		writeJSON(w, 500, map[string]any{"error": "Failed to list businesses"})
		return
	}
	writeJSON(w, 200, map[string]any{"businesses": list, "count": len(list)})
}

// listBusinessesOf sirve /api/business/user/{uid}: solo el propio usuario
// puede listar sus perfiles.
func (s *Server) listBusinessesOf(w http.ResponseWriter, r *http.Request, rawUID string) {
	authID, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	uid, err := uuid.Parse(rawUID)
	if err != nil || uid != authID {
		writeJSON(w, 403, map[string]any{"error": "Not your businesses"})
		return
	}
	list, err := s.businesses.ListByUser(r.Context(), uid)
	if err != nil {
		log.Error().Err(err).Msg("listar negocios")
		writeJSON(w, 500, map[string]any{"error": "Failed to list businesses"})
		return
	}
	writeJSON(w, 200, map[string]any{"businesses": list, "count": len(list)})
}

func (s *Server) getBusiness(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	b, err := s.businesses.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, 404, map[string]any{"error": "Business not found"})
			return
		}
		log.Error().Err(err).Msg("buscar negocio")
		writeJSON(w, 500, map[string]any{"error": "Failed to fetch business"})
		return
	}
	writeJSON(w, 200, map[string]any{"business": b})
}

func (s *Server) updateBusiness(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	userID, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	b, err := s.businesses.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
		return
	}
	if b.UserID != userID {
		writeJSON(w, 403, map[string]any{"error": "Not your business"})
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeJSON(w, 400, map[string]any{"error": "Invalid multipart form"})
		return
	}
	fillBusinessFromForm(b, r)
	if svc := r.FormValue("services"); svc != "" {
		names := parseServices(svc)
		out := make([]domain.Service, 0, len(names))
		for _, n := range names {
			out = append(out, domain.Service{Name: n})
		}
		b.Services = out
	}
	if url, err := s.saveFormFile(w, r, "logo", "logos"); err != nil {
		return
	} else if url != "" {
		b.LogoURL = url
	}
	if url, err := s.saveFormFile(w, r, "hero_image", "hero"); err != nil {
		return
	} else if url != "" {
		b.HeroImageURL = url
	}
	if err := s.businesses.Update(r.Context(), b); err != nil {
		log.Error().Err(err).Msg("actualizar negocio")
		writeJSON(w, 500, map[string]any{"error": "Failed to update business"})
		return
	}
	writeJSON(w, 200, map[string]any{"business": b})
}

func (s *Server) deleteBusiness(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	userID, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	b, err := s.businesses.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
		return
	}
	if b.UserID != userID {
		writeJSON(w, 403, map[string]any{"error": "Not your business"})
		return
	}
	if err := s.businesses.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("borrar negocio")
		writeJSON(w, 500, map[string]any{"error": "Failed to delete business"})
		return
	}
	writeJSON(w, 200, map[string]any{"message": "Business deleted"})
}

// exportProducts arma un XLSX con los productos del negocio y lo manda inline.
func (s *Server) exportProducts(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	b, err := s.businesses.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
		return
	}
	products, err := s.products.ListByBusiness(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("listar productos para export")
		writeJSON(w, 500, map[string]any{"error": "Failed to export products"})
		return
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"Product", "Category", "Description", "Price", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range products {
		values := []any{p.ProductName, p.Category, p.Description, p.Price, p.CreatedAt.Format("2006-01-02")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	filename := strings.ReplaceAll(strings.ToLower(b.BusinessName), " ", "_") + "_products.xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("escribir xlsx")
	}
}

// saveFormFile guarda el archivo del campo dado si vino; escribe la respuesta
// de error y devuelve err != nil cuando la subida es inválida.
func (s *Server) saveFormFile(w http.ResponseWriter, r *http.Request, field, dir string) (string, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return "", nil
	}
	fh := r.MultipartForm.File[field][0]
	url, err := s.saveUpload(r.Context(), fh, dir)
	if err != nil {
		if errors.Is(err, errBadImage) {
			writeJSON(w, 400, map[string]any{"error": err.Error()})
		} else {
			log.Error().Err(err).Str("field", field).Msg("guardar upload")
			writeJSON(w, 400, map[string]any{"error": err.Error()})
		}
		return "", err
	}
	return url, nil
}

func fillBusinessFromForm(b *domain.Business, r *http.Request) {
	set := func(dst *string, field string) {
		if v := r.FormValue(field); v != "" {
			*dst = v
		}
	}
	set(&b.BusinessName, "business_name")
	set(&b.Industry, "industry")
	set(&b.Tagline, "tagline")
	set(&b.Description, "description")
	set(&b.Email, "email")
	set(&b.Phone, "phone")
	set(&b.Address, "address")
	set(&b.LinkedinURL, "linkedin_url")
	set(&b.InstagramURL, "instagram_url")
	set(&b.FacebookURL, "facebook_url")
	set(&b.BrandColor, "brand_color")
	set(&b.TemplateName, "template_name")
}

// parseServices acepta JSON array o lista separada por comas.
func parseServices(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err == nil {
		return names
	}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return names
}
