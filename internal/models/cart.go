package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem appartient à la session anonyme, pas au compte utilisateur.
// L'unicité (session_key, product_id) garantit qu'un ré-ajout incrémente
// la quantité au lieu de dupliquer la ligne.
type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionKey string    `gorm:"size:40;not null;uniqueIndex:idx_session_product" json:"-"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_session_product" json:"product_id"`
	Product    *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// TotalPrice retourne le total de ligne (prix × quantité).
func (ci CartItem) TotalPrice() decimal.Decimal {
	if ci.Product == nil {
		return decimal.Zero
	}
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// CartView est la réponse renvoyée par GET /api/cart.
type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type CartLine struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Image     string          `json:"image,omitempty"`
}
