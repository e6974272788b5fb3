package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/oauth2"

	"github.com/steve958/plant-shop/internal/cart"
	"github.com/steve958/plant-shop/internal/catalog"
	"github.com/steve958/plant-shop/internal/config"
	"github.com/steve958/plant-shop/internal/domain"
	"github.com/steve958/plant-shop/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	catalog  *usecase.CatalogUC
	products *usecase.ProductUC
	orders   *usecase.OrderUC
	auth     *usecase.AuthUC
	storage  domain.FileStorage
	oauthCfg *oauth2.Config
	cfg      *config.Config

	sessionKey []byte
	validate   *validator.Validate
}

func New(cfg *config.Config, cat *usecase.CatalogUC, p *usecase.ProductUC, o *usecase.OrderUC, a *usecase.AuthUC, fs domain.FileStorage, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		catalog:    cat,
		products:   p,
		orders:     o,
		auth:       a,
		storage:    fs,
		oauthCfg:   oauthCfg,
		cfg:        cfg,
		sessionKey: []byte(cfg.SessionKey),
		validate:   validator.New(),
	}
	s.routes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.BaseURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return Chain(s.mux,
		c.Handler,
		RateLimit(120),
		Metrics,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.cfg.StorageDir))))
	s.mux.Handle("/metrics", promhttp.Handler())

	s.mux.HandleFunc("/api/catalog/discounts", s.handleDiscounts)
	s.mux.HandleFunc("/api/catalog/gender/", s.handleGenderPage)
	s.mux.HandleFunc("/api/catalog/subcategory/", s.handleSubcategoryPage)
	s.mux.HandleFunc("/api/products/", s.handleProductDetails)

	s.mux.HandleFunc("/api/cart", s.handleCartView)
	s.mux.HandleFunc("/api/cart/add", s.handleCartAdd)
	s.mux.HandleFunc("/api/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/api/cart/clear", s.handleCartClear)
	s.mux.HandleFunc("/api/checkout", s.handleCheckout)

	s.mux.HandleFunc("/api/auth/register", s.handleRegister)
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("/api/auth/me", s.handleMe)
	s.mux.HandleFunc("/api/profile", s.handleProfile)
	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)

	s.mux.HandleFunc("/api/admin/products", s.handleAdminProducts)
	s.mux.HandleFunc("/api/admin/products/export", s.handleAdminExport)
	s.mux.HandleFunc("/api/admin/products/", s.handleAdminProductByID)
	s.mux.HandleFunc("/api/admin/orders", s.handleAdminOrders)
}

// pageResponse is what every catalog page endpoint returns: the visible
// products plus the facet options available within the page scope.
type pageResponse struct {
	Products      []productJSON `json:"products"`
	Manufacturers []string      `json:"manufacturers"`
	Categories    []string      `json:"categories"`
	Types         []string      `json:"types"`
	Sizes         []string      `json:"sizes"`
}

type productJSON struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OnDiscount    bool     `json:"onDiscount,omitempty"`
	DiscountPrice float64  `json:"discountPrice,omitempty"`
	PriceDisplay  string   `json:"priceDisplay"`
	Manufacturer  string   `json:"manufacturer"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Gender        string   `json:"gender"`
	Type          string   `json:"type"`
	Size          []string `json:"size"`
	Images        []string `json:"images"`
	Description   string   `json:"description,omitempty"`
}

func toProductJSON(p *domain.Product) productJSON {
	imgs := make([]string, 0, len(p.Images))
	for _, im := range p.Images {
		imgs = append(imgs, im.URL)
	}
	return productJSON{
		ProductID:     p.ID.String(),
		Name:          p.Name,
		Price:         p.Price,
		OnDiscount:    p.OnDiscount,
		DiscountPrice: p.DiscountPrice,
		PriceDisplay:  cart.FormatPrice(p.EffectivePrice()),
		Manufacturer:  p.Manufacturer,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Gender:        string(p.Gender),
		Type:          p.Type,
		Size:          p.Sizes,
		Images:        imgs,
		Description:   p.Description,
	}
}

// criteriaFromQuery builds the in-memory pipeline input from query params.
// Repeated params select multiple facet values; unknown params are ignored.
func criteriaFromQuery(q url.Values) (catalog.Criteria, catalog.SortKey) {
	c := catalog.Criteria{
		Search: q.Get("q"),
		Facets: map[catalog.Facet][]string{
			catalog.FacetManufacturer: q["manufacturer"],
			catalog.FacetCategory:     q["category"],
			catalog.FacetType:         q["type"],
			catalog.FacetGender:       q["gender"],
			catalog.FacetSize:         q["size"],
		},
	}
	return c, catalog.SortKey(q.Get("sort"))
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, scope domain.PageScope) {
	crit, key := criteriaFromQuery(r.URL.Query())
	res, err := s.catalog.Page(r.Context(), scope, crit, key)
	if err != nil {
		http.Error(w, "catalog", http.StatusInternalServerError)
		return
	}
	out := pageResponse{
		Products:      make([]productJSON, 0, len(res.Products)),
		Manufacturers: res.Manufacturers,
		Categories:    res.Categories,
		Types:         res.Types,
		Sizes:         res.Sizes,
	}
	for i := range res.Products {
		out.Products = append(out.Products, toProductJSON(&res.Products[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDiscounts backs the home page: only products flagged on discount.
func (s *Server) handleDiscounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	onDiscount := true
	s.servePage(w, r, domain.PageScope{OnDiscount: &onDiscount})
}

func (s *Server) handleGenderPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	g := strings.TrimPrefix(r.URL.Path, "/api/catalog/gender/")
	if g != string(domain.GenderMale) && g != string(domain.GenderFemale) {
		http.NotFound(w, r)
		return
	}
	s.servePage(w, r, domain.PageScope{Gender: domain.Gender(g)})
}

func (s *Server) handleSubcategoryPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	sub, _ := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/api/catalog/subcategory/"))
	if sub == "" {
		http.NotFound(w, r)
		return
	}
	s.servePage(w, r, domain.PageScope{Subcategory: sub})
}

func (s *Server) handleProductDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/products/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, toProductJSON(p))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
