package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"risearc_back_end/internal/models"
)

type OrderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateFromCart matérialise le panier de la session en une commande.
// Tout se passe dans une seule transaction : snapshot des lignes avec le
// prix courant du produit, calcul du total, statut initial "pending",
// puis vidage du panier. Panier vide ⇒ rejet, rien n'est créé.
func (r *OrderRepo) CreateFromCart(ctx context.Context, userID uint, sessionKey string) (*models.Order, error) {
	var order *models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").
			Where("session_key = ?", sessionKey).
			Order("created_at ASC").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrPanierVide
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			if item.Product == nil {
				return gorm.ErrRecordNotFound
			}
			// Prix figé au moment de l'achat, découplé du prix catalogue.
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
			total = total.Add(item.TotalPrice())
		}

		order = &models.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      models.StatusPending,
			Items:       orderItems,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Where("session_key = ?", sessionKey).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID renvoie une commande appartenant à l'utilisateur donné.
func (r *OrderRepo) GetByID(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		First(&order, "id = ? AND user_id = ?", orderID, userID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByUserID renvoie les commandes de l'utilisateur, les plus récentes d'abord.
func (r *OrderRepo) GetByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetAll renvoie toutes les commandes (vue admin).
func (r *OrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetRecent renvoie les n commandes les plus récentes.
func (r *OrderRepo) GetRecent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// UpdateStatus applique une transition de statut en validant le graphe :
// toute transition hors table est rejetée, y compris depuis un état terminal.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID uint, next models.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, ErrTransitionInvalide
	}

	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(next) {
			return ErrTransitionInvalide
		}
		order.Status = next
		return tx.Model(&order).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// TotalRevenue renvoie la somme des montants de toutes les commandes.
// Aucune commande ⇒ 0, pas une erreur.
func (r *OrderRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&revenue); err != nil {
		return decimal.Zero, err
	}
	return revenue, nil
}

// Count renvoie le nombre total de commandes.
func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}
