package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"risearc_back_end/internal/models"
)

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// ListActive renvoie les produits actifs, filtrés par catégorie si demandé.
func (r *ProductRepo) ListActive(ctx context.Context, categoryID *uint) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var products []models.Product
	err := query.Order("created_at DESC").Find(&products).Error
	return products, err
}

// Latest renvoie les n produits actifs les plus récents (page d'accueil).
func (r *ProductRepo) Latest(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// GetActiveByID renvoie un produit actif, NotFound sinon.
func (r *ProductRepo) GetActiveByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").
		First(&product, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByID renvoie un produit sans filtre d'activation (vue admin) :
// un produit désactivé reste éditable.
func (r *ProductRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchSQL est la recherche de repli quand Elasticsearch est absent :
// LIKE insensible à la casse sur le nom et la description.
func (r *ProductRepo) SearchSQL(ctx context.Context, q string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	var products []models.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// ListActiveByIDs charge les produits actifs correspondant aux IDs
// renvoyés par la recherche Elasticsearch.
func (r *ProductRepo) ListActiveByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

// Create insère un produit après vérification de sa catégorie.
func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", product.CategoryID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// Update modifie un produit existant.
func (r *ProductRepo) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"category_id": product.CategoryID,
			"price":       product.Price,
			"stock":       product.Stock,
			"image":       product.Image,
			"is_active":   product.IsActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete supprime un produit (et ses lignes de panier en cascade).
func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count renvoie le nombre total de produits, actifs ou non.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

// ---- Catégories ----

func (r *ProductRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *ProductRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *ProductRepo) UpdateCategory(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProductRepo) DeleteCategory(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
