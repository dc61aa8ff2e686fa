package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Image       string          `gorm:"size:255" json:"image,omitempty"` // clé d'objet MinIO
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
