package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:140;uniqueIndex"`
	PasswordHash string    `gorm:"size:100"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	Name         string    `gorm:"size:140"`
	Surname      string    `gorm:"size:140"`
	Street       string    `gorm:"size:180"`
	Number       string    `gorm:"size:20"`
	Place        string    `gorm:"size:100"`
	PostalCode   string    `gorm:"size:20"`
	PhoneNumber  string    `gorm:"size:40"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
