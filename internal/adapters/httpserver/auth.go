package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/steve958/plant-shop/internal/domain"
)

const sessionCookie = "sess"

var googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type sessionClaims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(u *domain.User, dur time.Duration) (string, error) {
	claims := sessionClaims{
		Email: u.Email,
		Admin: u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    "plant-shop",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(dur)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionKey)
}

func (s *Server) parseToken(tok string) (*sessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tok, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.sessionKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *Server) setSession(w http.ResponseWriter, u *domain.User) {
	tok, err := s.issueToken(u, 7*24*time.Hour)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: tok, Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

// currentUser resolves the session from the cookie or a bearer header;
// nil means anonymous.
func (s *Server) currentUser(r *http.Request) *sessionUser {
	tok := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		tok = c.Value
	}
	if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
		tok = auth[7:]
	}
	if tok == "" {
		return nil
	}
	claims, err := s.parseToken(tok)
	if err != nil {
		return nil
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil
	}
	return &sessionUser{ID: id, Email: claims.Email, Admin: claims.Admin}
}

type sessionUser struct {
	ID    uuid.UUID
	Email string
	Admin bool
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) *sessionUser {
	u := s.currentUser(r)
	if u == nil || !u.Admin {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil
	}
	return u
}

type credentialsRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Street      string `json:"street"`
	Number      string `json:"number"`
	Place       string `json:"place"`
	PostalCode  string `json:"postalCode"`
	PhoneNumber string `json:"phoneNumber"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		http.Error(w, "credentials", http.StatusBadRequest)
		return
	}
	u, err := s.auth.Register(r.Context(), req.Email, req.Password, domain.User{
		Name:        req.Name,
		Surname:     req.Surname,
		Street:      req.Street,
		Number:      req.Number,
		Place:       req.Place,
		PostalCode:  req.PostalCode,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			http.Error(w, "email taken", http.StatusConflict)
			return
		}
		http.Error(w, "register", http.StatusBadRequest)
		return
	}
	s.setSession(w, u)
	writeJSON(w, http.StatusCreated, userToJSON(u))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	u, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	s.setSession(w, u)
	writeJSON(w, http.StatusOK, userToJSON(u))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	su := s.currentUser(r)
	if su == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	u, err := s.auth.Get(r.Context(), su.ID)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, userToJSON(u))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	su := s.currentUser(r)
	if su == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleMe(w, r)
	case http.MethodPut:
		var req struct {
			Name        string `json:"name"`
			Surname     string `json:"surname"`
			Street      string `json:"street"`
			Number      string `json:"number"`
			Place       string `json:"place"`
			PostalCode  string `json:"postalCode"`
			PhoneNumber string `json:"phoneNumber"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		u, err := s.auth.UpdateProfile(r.Context(), su.ID, domain.User{
			Name:        req.Name,
			Surname:     req.Surname,
			Street:      req.Street,
			Number:      req.Number,
			Place:       req.Place,
			PostalCode:  req.PostalCode,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			http.Error(w, "profile", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, userToJSON(u))
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func userToJSON(u *domain.User) map[string]any {
	return map[string]any{
		"email":       u.Email,
		"isAdmin":     u.IsAdmin,
		"name":        u.Name,
		"surname":     u.Surname,
		"street":      u.Street,
		"number":      u.Number,
		"place":       u.Place,
		"postalCode":  u.PostalCode,
		"phoneNumber": u.PhoneNumber,
	}
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", http.StatusInternalServerError)
		return
	}
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 300, HttpOnly: true})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", http.StatusInternalServerError)
		return
	}
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "state", http.StatusBadRequest)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "code", http.StatusBadRequest)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "exchange", http.StatusBadGateway)
		return
	}
	resp, err := s.oauthCfg.Client(r.Context(), tok).Get(googleUserInfoURL)
	if err != nil {
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	body, _ := io.ReadAll(resp.Body)
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil || info.Email == "" {
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	u, err := s.auth.LoginGoogle(r.Context(), info.Email, info.Name)
	if err != nil {
		http.Error(w, "login", http.StatusInternalServerError)
		return
	}
	s.setSession(w, u)
	http.Redirect(w, r, "/", http.StatusFound)
}
