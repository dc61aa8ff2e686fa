package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/models"
)

const (
	ProductCacheTTL     = 10 * time.Minute
	ProductListCacheTTL = 5 * time.Minute
)

// GetProduct récupère un produit depuis Redis, ou depuis Postgres en
// le mettant en cache au passage.
func GetProduct(ctx context.Context, productID uint) (*models.Product, error) {
	key := productKey(productID)

	if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	var product models.Product
	if err := database.DB.WithContext(ctx).Preload("Category").
		First(&product, "id = ? AND is_active = ?", productID, true).Error; err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		database.Redis.Set(ctx, key, data, ProductCacheTTL)
	}
	return &product, nil
}

// GetProductList lit une liste mise en cache (page d'accueil, catalogue).
func GetProductList(ctx context.Context, key string) ([]models.Product, bool) {
	data, err := database.Redis.Get(ctx, key).Result()
	if err != nil || data == "" {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProductList met en cache une liste de produits.
func SetProductList(ctx context.Context, key string, products []models.Product) {
	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, key, data, ProductListCacheTTL)
	}
}

// InvalidateProduct purge le cache d'un produit et des listes après
// toute mutation catalogue.
func InvalidateProduct(ctx context.Context, productID uint) {
	database.Redis.Del(ctx, productKey(productID))
	InvalidateProductLists(ctx)
}

// InvalidateProductLists purge les listes mises en cache.
func InvalidateProductLists(ctx context.Context) {
	iter := database.Redis.Scan(ctx, 0, "products:*", 0).Iterator()
	for iter.Next(ctx) {
		database.Redis.Del(ctx, iter.Val())
	}
}

func productKey(productID uint) string {
	return fmt.Sprintf("product:%d", productID)
}
