package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-app/vitrina/internal/domain"
)

// POST /api/products  (multipart: campos + hasta 5 "images")
func (s *Server) handleProductCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeJSON(w, 400, map[string]any{"error": "Invalid multipart form"})
		return
	}
	businessID, err := uuid.Parse(r.FormValue("business_id"))
	if err != nil {
		writeJSON(w, 400, map[string]any{"error": "business_id is required"})
		return
	}
	p := &domain.Product{
		BusinessID:  businessID,
		ProductName: r.FormValue("product_name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, 400, map[string]any{"error": "Invalid price"})
			return
		}
		p.Price = price
	}

	if r.MultipartForm != nil {
		files := r.MultipartForm.File["images"]
		if len(files) > maxProductImgs {
			files = files[:maxProductImgs]
		}
		for _, fh := range files {
			url, err := s.saveUpload(r.Context(), fh, "products")
			if err != nil {
				writeJSON(w, 400, map[string]any{"error": err.Error()})
				return
			}
			p.Images = append(p.Images, url)
		}
		if len(p.Images) > 0 {
			// la primera imagen es la principal
			p.ImageURL = p.Images[0]
		}
	}

	if err := s.products.Create(r.Context(), p); err != nil {
		s.writeProductError(w, err, "create")
		return
	}
	writeJSON(w, 201, map[string]any{"product": p})
}

// GET    /api/products/{business_id}  -> lista del negocio
// PUT    /api/products/{id}           -> actualiza
// DELETE /api/products/{id}           -> borra
func (s *Server) handleProductByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Not found"})
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.listProducts(w, r, id)
	case http.MethodPut:
		s.updateProduct(w, r, id)
	case http.MethodDelete:
		s.deleteProduct(w, r, id)
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) {
	products, err := s.products.ListByBusiness(r.Context(), businessID)
	if err != nil {
		log.Error().Err(err).Msg("listar productos")
		writeJSON(w, 500, map[string]any{"error": "Failed to list products"})
		return
	}
	writeJSON(w, 200, map[string]any{"products": products, "count": len(products)})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "Product not found"})
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeJSON(w, 400, map[string]any{"error": "Invalid multipart form"})
		return
	}
	if v := r.FormValue("product_name"); v != "" {
		p.ProductName = v
	}
	if v := r.FormValue("description"); v != "" {
		p.Description = v
	}
	if v := r.FormValue("category"); v != "" {
		p.Category = v
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, 400, map[string]any{"error": "Invalid price"})
			return
		}
		p.Price = price
	}
	if r.MultipartForm != nil && len(r.MultipartForm.File["images"]) > 0 {
		files := r.MultipartForm.File["images"]
		if len(files) > maxProductImgs {
			files = files[:maxProductImgs]
		}
		var urls []string
		for _, fh := range files {
			url, err := s.saveUpload(r.Context(), fh, "products")
			if err != nil {
				writeJSON(w, 400, map[string]any{"error": err.Error()})
				return
			}
			urls = append(urls, url)
		}
		p.Images = urls
		p.ImageURL = urls[0]
	}
	if err := s.products.Update(r.Context(), p); err != nil {
		s.writeProductError(w, err, "update")
		return
	}
	writeJSON(w, 200, map[string]any{"product": p})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if _, ok := s.requireAuth(w, r); !ok {
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, 404, map[string]any{"error": "Product not found"})
			return
		}
		log.Error().Err(err).Msg("borrar producto")
		writeJSON(w, 500, map[string]any{"error": "Failed to delete product"})
		return
	}
	writeJSON(w, 200, map[string]any{"message": "Product deleted"})
}

func (s *Server) writeProductError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPrice):
		writeJSON(w, 400, map[string]any{"error": "Price must be zero or positive"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, 404, map[string]any{"error": "Business not found"})
	default:
		log.Error().Err(err).Str("op", op).Msg("producto")
		writeJSON(w, 400, map[string]any{"error": err.Error()})
	}
}
