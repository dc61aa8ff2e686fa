package product

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"risearc_back_end/internal/cache"
	"risearc_back_end/internal/database"
	"risearc_back_end/internal/repository"
	"risearc_back_end/internal/services"
)

//
// 🏠 GET /api/home — vitrine : 8 nouveautés + catégories
//
func Home(c *gin.Context) {
	ctx := c.Request.Context()
	repo := repository.NewProductRepo(database.DB)

	products, cached := cache.GetProductList(ctx, "products:home")
	if !cached {
		var err error
		products, err = repo.Latest(ctx, 8)
		if err != nil {
			log.Println("❌ Erreur lecture vitrine:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
			return
		}
		cache.SetProductList(ctx, "products:home", products)
	}

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"categories": categories,
	})
}

//
// 🛍️ GET /api/products — catalogue, filtre ?category= et recherche ?q=
//
func ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	repo := repository.NewProductRepo(database.DB)

	// Recherche plein texte : Elasticsearch d'abord, SQL en repli
	if q := c.Query("q"); q != "" {
		if ids, err := services.SearchProducts(q); err == nil {
			products, err := repo.ListActiveByIDs(ctx, ids)
			if err == nil {
				c.JSON(http.StatusOK, gin.H{"products": products, "source": "elasticsearch"})
				return
			}
		}
		products, err := repo.SearchSQL(ctx, q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "source": "sql"})
		return
	}

	var categoryID *uint
	cacheKey := "products:all"
	if raw := c.Query("category"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie invalide"})
			return
		}
		id := uint(parsed)
		categoryID = &id
		cacheKey = "products:category:" + raw
	}

	if products, ok := cache.GetProductList(ctx, cacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"products": products})
		return
	}

	products, err := repo.ListActive(ctx, categoryID)
	if err != nil {
		log.Println("❌ Erreur lecture produits:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}
	cache.SetProductList(ctx, cacheKey, products)

	c.JSON(http.StatusOK, gin.H{"products": products})
}

//
// 🔍 GET /api/products/:id
//
func GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := cache.GetProduct(c.Request.Context(), uint(productID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	c.JSON(http.StatusOK, p)
}

//
// 🏷️ GET /api/categories
//
func ListCategories(c *gin.Context) {
	repo := repository.NewProductRepo(database.DB)
	categories, err := repo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
