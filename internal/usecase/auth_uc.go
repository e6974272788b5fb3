package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/steve958/plant-shop/internal/domain"
)

type AuthUC struct {
	Users domain.UserRepo
}

func (uc *AuthUC) Register(ctx context.Context, email, password string, profile domain.User) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password required")
	}
	if len(password) < 6 {
		return nil, errors.New("password too short")
	}
	if existing, err := uc.Users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := profile
	u.ID = uuid.New()
	u.Email = email
	u.PasswordHash = string(hash)
	u.IsAdmin = false
	if err := uc.Users.Save(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (uc *AuthUC) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := uc.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

// LoginGoogle resolves or creates the account for a Google-verified email.
// No password is set; such accounts sign in through OAuth only.
func (uc *AuthUC) LoginGoogle(ctx context.Context, email, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrUnauthorized
	}
	if u, err := uc.Users.FindByEmail(ctx, email); err == nil {
		return u, nil
	}
	u := &domain.User{ID: uuid.New(), Email: email, Name: name}
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *AuthUC) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.Users.FindByID(ctx, id)
}

// UpdateProfile rewrites the editable profile fields, leaving credentials
// and the admin flag untouched.
func (uc *AuthUC) UpdateProfile(ctx context.Context, id uuid.UUID, profile domain.User) (*domain.User, error) {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name = profile.Name
	u.Surname = profile.Surname
	u.Street = profile.Street
	u.Number = profile.Number
	u.Place = profile.Place
	u.PostalCode = profile.PostalCode
	u.PhoneNumber = profile.PhoneNumber
	if err := uc.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
