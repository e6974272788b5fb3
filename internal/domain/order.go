package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusNotified  OrderStatus = "notified"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID     uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status OrderStatus `gorm:"type:varchar(20);index"`
	Items  []OrderItem

	// Customer details as captured at submission time.
	Email       string `gorm:"size:140"`
	Name        string `gorm:"size:140"`
	Surname     string `gorm:"size:140"`
	Street      string `gorm:"size:180"`
	Number      string `gorm:"size:20"`
	Place       string `gorm:"size:100"`
	PostalCode  string `gorm:"size:20"`
	PhoneNumber string `gorm:"size:40"`

	Subtotal    float64    `gorm:"type:decimal(12,2);default:0"`
	DeliveryFee float64    `gorm:"type:decimal(12,2);default:0"`
	Total       float64    `gorm:"type:decimal(12,2)"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	Notified    bool       `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID string    `gorm:"size:40;index"`
	Name      string    `gorm:"size:180"`
	Image     string    `gorm:"size:255"`
	Quantity  int       `gorm:"not null"`
	UnitPrice float64   `gorm:"type:decimal(12,2)"`
}
