package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"risearc_back_end/internal/cache"
	"risearc_back_end/internal/database"
	"risearc_back_end/internal/models"
	"risearc_back_end/internal/repository"
	"risearc_back_end/internal/services"
	"risearc_back_end/internal/utils"
)

type productInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	CategoryID  uint            `json:"category_id" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
	IsActive    *bool           `json:"is_active"`
}

//
// 🆕 POST /api/admin/products
//
func CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix ne peut pas être négatif"})
		return
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	repo := repository.NewProductRepo(database.DB)
	if err := repo.Create(c.Request.Context(), &product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie inexistante"})
			return
		}
		log.Println("❌ Erreur création produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	go services.IndexProduct(product)
	cache.InvalidateProductLists(c.Request.Context())
	utils.LogAction(c, "create", "product", strconv.FormatUint(uint64(product.ID), 10), nil, product)

	log.Println("🆕 Produit créé :", product.Name)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit créé avec succès",
		"product": product,
	})
}

//
// ✏️ PUT /api/admin/products/:id
//
func UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix ne peut pas être négatif"})
		return
	}

	repo := repository.NewProductRepo(database.DB)

	// Lecture sans filtre d'activation : un produit désactivé reste
	// éditable, et sa clé d'image comme son état courant sont conservés.
	before, err := repo.GetByID(c.Request.Context(), uint(productID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		log.Println("❌ Erreur lecture produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	product := models.Product{
		ID:          uint(productID),
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       before.Image,
		IsActive:    before.IsActive,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := repo.Update(c.Request.Context(), &product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		log.Println("❌ Erreur mise à jour produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	if product.IsActive {
		go services.IndexProduct(product)
	} else {
		go services.RemoveProductFromIndex(product.ID)
	}
	cache.InvalidateProduct(c.Request.Context(), product.ID)
	utils.LogAction(c, "update", "product", c.Param("id"), before, product)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit mis à jour avec succès",
		"product": product,
	})
}

//
// 🗑️ DELETE /api/admin/products/:id
//
func DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	repo := repository.NewProductRepo(database.DB)
	if err := repo.Delete(c.Request.Context(), uint(productID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		log.Println("❌ Erreur suppression produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	go services.RemoveProductFromIndex(uint(productID))
	cache.InvalidateProduct(c.Request.Context(), uint(productID))
	utils.LogAction(c, "delete", "product", c.Param("id"), nil, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}

//
// 🖼️ POST /api/admin/products/:id/image
//
func UploadProductImage(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'image' manquant"})
		return
	}

	objectKey, err := services.UploadFile(c.Request.Context(), "products", file)
	if err != nil {
		log.Println("❌ Erreur upload MinIO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	res := database.DB.WithContext(c.Request.Context()).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("image", objectKey)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement image"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProduct(c.Request.Context(), uint(productID))
	utils.LogAction(c, "upload_image", "product", c.Param("id"), nil, gin.H{"image": objectKey})

	c.JSON(http.StatusOK, gin.H{
		"message": "Image produit mise à jour",
		"key":     objectKey,
	})
}

// ---- Catégories ----

type categoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

//
// 🆕 POST /api/admin/categories
//
func CreateCategory(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	category := models.Category{Name: input.Name, Description: input.Description}
	repo := repository.NewProductRepo(database.DB)
	if err := repo.CreateCategory(c.Request.Context(), &category); err != nil {
		log.Println("❌ Erreur création catégorie:", err)
		c.JSON(http.StatusConflict, gin.H{"error": "Cette catégorie existe déjà"})
		return
	}

	utils.LogAction(c, "create", "category", strconv.FormatUint(uint64(category.ID), 10), nil, category)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Catégorie créée avec succès",
		"category": category,
	})
}

//
// ✏️ PUT /api/admin/categories/:id
//
func UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	category := models.Category{ID: uint(categoryID), Name: input.Name, Description: input.Description}
	repo := repository.NewProductRepo(database.DB)
	if err := repo.UpdateCategory(c.Request.Context(), &category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie"})
		return
	}

	cache.InvalidateProductLists(c.Request.Context())
	utils.LogAction(c, "update", "category", c.Param("id"), nil, category)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Catégorie mise à jour avec succès",
		"category": category,
	})
}

//
// 🗑️ DELETE /api/admin/categories/:id
//
func DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	repo := repository.NewProductRepo(database.DB)
	if err := repo.DeleteCategory(c.Request.Context(), uint(categoryID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie"})
		return
	}

	cache.InvalidateProductLists(c.Request.Context())
	utils.LogAction(c, "delete", "category", c.Param("id"), nil, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée avec succès"})
}
