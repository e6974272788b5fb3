package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/steve958/plant-shop/internal/catalog"
	"github.com/steve958/plant-shop/internal/domain"
)

type adminProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"gte=0"`
	OnDiscount    bool     `json:"onDiscount"`
	DiscountPrice float64  `json:"discountPrice" validate:"gte=0"`
	Manufacturer  string   `json:"manufacturer"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Gender        string   `json:"gender" validate:"omitempty,oneof=male female"`
	Type          string   `json:"type"`
	Size          []string `json:"size"`
	Description   string   `json:"description"`
}

func (req *adminProductRequest) apply(p *domain.Product) {
	p.Name = req.Name
	p.Price = req.Price
	p.OnDiscount = req.OnDiscount
	p.DiscountPrice = req.DiscountPrice
	p.Manufacturer = req.Manufacturer
	p.Category = req.Category
	p.Subcategory = req.Subcategory
	p.Gender = domain.Gender(req.Gender)
	p.Type = req.Type
	p.Sizes = req.Size
	p.Description = req.Description
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		// The admin panel works over the whole catalog, no page scope.
		s.servePage(w, r, domain.PageScope{})
	case http.MethodPost:
		var req adminProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			http.Error(w, "product fields", http.StatusBadRequest)
			return
		}
		p := &domain.Product{}
		req.apply(p)
		if err := s.products.Create(r.Context(), p); err != nil {
			http.Error(w, "create", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toProductJSON(p))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminProductByID(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/products/")
	if strings.HasSuffix(rest, "/images/promote") {
		s.handleAdminPromoteImage(w, r, strings.TrimSuffix(rest, "/images/promote"))
		return
	}
	if strings.HasSuffix(rest, "/images") {
		s.handleAdminUploadImages(w, r, strings.TrimSuffix(rest, "/images"))
		return
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPut:
		p, err := s.catalog.Get(r.Context(), id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		var req adminProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(&req); err != nil {
			http.Error(w, "product fields", http.StatusBadRequest)
			return
		}
		req.apply(p)
		if err := s.products.Update(r.Context(), p); err != nil {
			http.Error(w, "save", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toProductJSON(p))
	case http.MethodDelete:
		if err := s.products.Delete(r.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "delete", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminUploadImages(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	id, err := uuid.Parse(strings.Trim(idStr, "/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "multipart", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		http.Error(w, "no files", http.StatusBadRequest)
		return
	}
	imgs := make([]domain.Image, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil || len(data) == 0 {
			continue
		}
		name := sanitizeFileName(p.ID.String() + "-" + strconv.FormatInt(time.Now().UnixNano(), 10) + fileExt(fh.Filename))
		stored, err := s.storage.SaveImage(r.Context(), name, data)
		if err != nil {
			http.Error(w, "storage", http.StatusInternalServerError)
			return
		}
		imgs = append(imgs, domain.Image{URL: stored, Alt: p.Name})
	}
	if len(imgs) == 0 {
		http.Error(w, "no readable files", http.StatusBadRequest)
		return
	}
	if err := s.products.AddImages(r.Context(), p.ID, imgs); err != nil {
		http.Error(w, "save images", http.StatusInternalServerError)
		return
	}
	urls := make([]string, 0, len(imgs))
	for _, im := range imgs {
		urls = append(urls, im.URL)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"status": "ok", "images": urls})
}

// handleAdminPromoteImage moves the chosen image to index 0 so the catalog
// shows it as the primary one.
func (s *Server) handleAdminPromoteImage(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	id, err := uuid.Parse(strings.Trim(idStr, "/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		http.Error(w, "url", http.StatusBadRequest)
		return
	}
	if err := s.products.PromoteImage(r.Context(), id, req.URL); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "promote", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	res, err := s.catalog.Page(r.Context(), domain.PageScope{}, catalog.Criteria{}, catalog.SortNameAsc)
	if err != nil {
		http.Error(w, "catalog", http.StatusInternalServerError)
		return
	}
	f := excelize.NewFile()
	sheet := "Proizvodi"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		http.Error(w, "xlsx", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	headers := []string{"ID", "Naziv", "Cena", "Na popustu", "Snižena cena", "Proizvođač", "Kategorija", "Podkategorija", "Pol", "Tip", "Veličine"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range res.Products {
		values := []any{
			p.ID.String(), p.Name, p.Price, p.OnDiscount, p.DiscountPrice,
			p.Manufacturer, p.Category, p.Subcategory, string(p.Gender), p.Type,
			strings.Join(p.Sizes, ", "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=proizvodi-%s.xlsx", time.Now().Format("2006-01-02")))
	_ = f.Write(w)
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	orders, err := s.orders.List(r.Context())
	if err != nil {
		http.Error(w, "orders", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders, "total": len(orders)})
}

func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i:])
	}
	return ".jpg"
}

func sanitizeFileName(name string) string {
	if name == "" {
		return "image.jpg"
	}
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "/", "-")
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || r == '_' || unicode.IsDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return '-'
	}, name)
}
