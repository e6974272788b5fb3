package domain

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = ""
)

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"size:180;not null"`
	Price         float64   `gorm:"type:decimal(12,2);not null"`
	OnDiscount    bool      `gorm:"default:false;index"`
	DiscountPrice float64   `gorm:"type:decimal(12,2);default:0"`
	Manufacturer  string    `gorm:"size:100;index"`
	Category      string    `gorm:"size:100"`
	Subcategory   string    `gorm:"size:100;index"`
	Gender        Gender    `gorm:"type:varchar(12);index"`
	Type          string    `gorm:"size:100"`
	Sizes         []string  `gorm:"type:jsonb;serializer:json"`
	Images        []Image   `gorm:"constraint:OnDelete:CASCADE"`
	Description   string    `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectivePrice is the price used for ordering and cart totals: the
// discount price while the product is flagged on discount, the regular
// price otherwise. A flagged product with no discount price set keeps the
// regular price rather than going to zero.
func (p *Product) EffectivePrice() float64 {
	if p.OnDiscount && p.DiscountPrice != 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// PrimaryImage returns the URL at index 0, the one the admin promoted.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	URL       string    `gorm:"size:255"`
	Alt       string    `gorm:"size:140"`
	Position  int       `gorm:"not null;default:0;index"`
	CreatedAt time.Time
}
