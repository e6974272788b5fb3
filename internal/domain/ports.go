package domain

import (
	"context"

	"github.com/google/uuid"
)

// PageScope is the coarse page-level predicate applied at the data source,
// before the in-memory catalog pipeline runs. Zero-value fields impose no
// restriction.
type PageScope struct {
	OnDiscount  *bool
	Gender      Gender
	Subcategory string
}

type ProductRepo interface {
	ListByScope(ctx context.Context, scope PageScope) ([]Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Save(ctx context.Context, p *Product) error
	// Delete removes the product with its images and reports the stored
	// image URLs so the caller can clean up file storage.
	Delete(ctx context.Context, id uuid.UUID) ([]string, error)
	AddImages(ctx context.Context, productID uuid.UUID, imgs []Image) error
	ReorderImages(ctx context.Context, productID uuid.UUID, urls []string) error
}

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Save(ctx context.Context, u *User) error
}

type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
}

type FileStorage interface {
	SaveImage(ctx context.Context, name string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
}

// OrderNotifier delivers the order summary to the shop owner. Delivery
// guarantees are the mail provider's concern.
type OrderNotifier interface {
	NotifyOrder(ctx context.Context, o *Order) error
}
