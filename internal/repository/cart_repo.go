package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"risearc_back_end/internal/models"
)

type CartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db}
}

// AddItem ajoute un produit au panier de la session. Upsert atomique :
// si la ligne (session, produit) existe déjà, la quantité est incrémentée
// en une seule requête — pas de lecture-modification-écriture, donc pas
// d'incrément perdu entre deux requêtes concurrentes.
// Aucune vérification de stock n'est faite à ce stade.
func (r *CartRepo) AddItem(ctx context.Context, sessionKey string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrQuantiteInvalide
	}

	var product models.Product
	if err := r.db.WithContext(ctx).
		First(&product, "id = ? AND is_active = ?", productID, true).Error; err != nil {
		return nil, err
	}

	item := models.CartItem{
		SessionKey: sessionKey,
		ProductID:  productID,
		Quantity:   quantity,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_key"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + excluded.quantity"),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	// Relit la ligne pour renvoyer la quantité cumulée.
	var saved models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").
		First(&saved, "session_key = ? AND product_id = ?", sessionKey, productID).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// RemoveItem supprime une ligne du panier. La ligne doit appartenir à la
// session appelante : sinon NotFound, et rien n'est supprimé.
func (r *CartRepo) RemoveItem(ctx context.Context, sessionKey string, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_key = ?", itemID, sessionKey).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ViewCart renvoie les lignes de la session avec leurs totaux.
// Session sans panier : liste vide et total 0, jamais une erreur.
func (r *CartRepo) ViewCart(ctx context.Context, sessionKey string) (*models.CartView, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").
		Where("session_key = ?", sessionKey).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	view := &models.CartView{
		Items: make([]models.CartLine, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		lineTotal := item.TotalPrice()
		line := models.CartLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			line.Price = item.Product.Price
			line.Image = item.Product.Image
		}
		view.Items = append(view.Items, line)
		view.Total = view.Total.Add(lineTotal)
	}
	return view, nil
}

// ClearCart vide entièrement le panier de la session.
func (r *CartRepo) ClearCart(ctx context.Context, sessionKey string) error {
	return r.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		Delete(&models.CartItem{}).Error
}
