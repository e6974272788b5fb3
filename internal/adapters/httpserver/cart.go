package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/steve958/plant-shop/internal/cart"
	"github.com/steve958/plant-shop/internal/usecase"
)

// The cart rides in a signed cookie owned by the client session. A missing
// cookie, a bad signature or malformed JSON all read as an empty cart; the
// cookie is rewritten in full after every mutation.
func (s *Server) readCart(r *http.Request) *cart.Cart {
	c, err := r.Cookie(cart.StorageKey)
	if err != nil {
		return cart.New()
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return cart.New()
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return cart.New()
	}
	return cart.Decode(payload)
}

func (s *Server) writeCart(w http.ResponseWriter, c *cart.Cart) {
	b := c.Encode()
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	val := sig + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: cart.StorageKey, Value: val, Path: "/", MaxAge: 60 * 60 * 24 * 30, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

type cartLineJSON struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	LineTotal    string  `json:"lineTotal"`
	LineTotalRaw float64 `json:"lineTotalRaw"`
}

type cartJSON struct {
	Items       []cartLineJSON `json:"items"`
	Subtotal    string         `json:"subtotal"`
	DeliveryFee string         `json:"deliveryFee"`
	Total       string         `json:"total"`
}

func cartToJSON(c *cart.Cart) cartJSON {
	out := cartJSON{
		Items:       []cartLineJSON{},
		Subtotal:    cart.FormatRSD(c.Subtotal()),
		DeliveryFee: cart.FormatRSD(cart.DeliveryFee),
		Total:       cart.FormatRSD(c.Total()),
	}
	for _, it := range c.Items() {
		lt := cart.LineTotal(it)
		raw, _ := lt.Float64()
		out.Items = append(out.Items, cartLineJSON{
			ProductID:    it.ProductID,
			Name:         it.Name,
			Image:        it.Image,
			Price:        it.Price,
			Quantity:     it.Quantity,
			LineTotal:    cart.FormatRSD(lt),
			LineTotalRaw: raw,
		})
	}
	return out
}

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, cartToJSON(s.readCart(r)))
}

// handleCartAdd captures name, primary image and effective price from the
// catalog at add time; later catalog edits do not touch existing lines.
func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	id, err := uuid.Parse(req.ProductID)
	if err != nil {
		http.Error(w, "productId", http.StatusBadRequest)
		return
	}
	p, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	c := s.readCart(r)
	c.Add(cart.LineItem{
		ProductID: p.ID.String(),
		Name:      p.Name,
		Image:     p.PrimaryImage(),
		Price:     p.EffectivePrice(),
		Quantity:  req.Quantity,
	})
	s.writeCart(w, c)
	writeJSON(w, http.StatusOK, cartToJSON(c))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	c := s.readCart(r)
	c.Remove(req.ProductID)
	s.writeCart(w, c)
	writeJSON(w, http.StatusOK, cartToJSON(c))
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	c := s.readCart(r)
	c.Clear()
	s.writeCart(w, c)
	writeJSON(w, http.StatusOK, cartToJSON(c))
}

type checkoutRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required"`
	Surname     string `json:"surname"`
	Street      string `json:"street"`
	Number      string `json:"number"`
	Place       string `json:"place"`
	PostalCode  string `json:"postalCode"`
	PhoneNumber string `json:"phoneNumber"`
}

// handleCheckout submits the cart as an order. The cart cookie is cleared
// only after the order is persisted and the notification attempted.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		http.Error(w, "customer details", http.StatusBadRequest)
		return
	}
	c := s.readCart(r)
	if c.IsEmpty() {
		http.Error(w, "empty cart", http.StatusBadRequest)
		return
	}
	var userID *uuid.UUID
	if u := s.currentUser(r); u != nil {
		userID = &u.ID
	}
	o, err := s.orders.Submit(r.Context(), c, usecase.CustomerDetails{
		Email:       req.Email,
		Name:        req.Name,
		Surname:     req.Surname,
		Street:      req.Street,
		Number:      req.Number,
		Place:       req.Place,
		PostalCode:  req.PostalCode,
		PhoneNumber: req.PhoneNumber,
	}, userID)
	if err != nil {
		http.Error(w, "order", http.StatusInternalServerError)
		return
	}
	c.Clear()
	s.writeCart(w, c)
	writeJSON(w, http.StatusCreated, map[string]any{
		"orderId": o.ID.String(),
		"total":   cart.FormatPrice(o.Total),
		"status":  string(o.Status),
	})
}
