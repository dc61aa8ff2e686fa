package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Graphe de transitions autorisées :
// pending → confirmed|cancelled, confirmed → shipped|cancelled,
// shipped → delivered. delivered et cancelled sont terminaux.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// IsValid indique si la valeur fait partie de l'énumération.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo vérifie qu'un passage de statut est autorisé.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order est un historique immuable une fois créé, à l'exception
// du statut et du timestamp de mise à jour.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID" json:"-"`
	TotalAmount decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_amount"`
	Status      OrderStatus     `gorm:"size:20;not null;default:pending" json:"status"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem fige le prix unitaire au moment de la commande : les
// changements ultérieurs du prix catalogue ne touchent jamais l'historique.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
}

// TotalPrice retourne le total de ligne au prix figé.
func (oi OrderItem) TotalPrice() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
