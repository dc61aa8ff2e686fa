package user

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/middleware"
	"risearc_back_end/internal/models"
	"risearc_back_end/internal/repository"
)

//
// 🟢 POST /api/cart/add/:productId
//
// Le panier appartient à la session anonyme (cookie), pas au compte :
// aucune authentification requise pour remplir un panier.
func AddToCart(c *gin.Context) {
	cartKey := c.GetString(middleware.CtxCartKey)
	if cartKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session panier indisponible"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// Quantité par défaut : 1
	input := struct {
		Quantity int `json:"quantity"`
	}{Quantity: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
			return
		}
	}

	repo := repository.NewCartRepo(database.DB)
	item, err := repo.AddItem(c.Request.Context(), cartKey, uint(productID), input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrQuantiteInvalide):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		default:
			log.Println("❌ Erreur ajout panier:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout au panier"})
		}
		return
	}

	name := ""
	if item.Product != nil {
		name = item.Product.Name
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  name + " ajouté au panier",
		"item":     item,
		"quantity": item.Quantity,
	})
}

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	cartKey := c.GetString(middleware.CtxCartKey)
	if cartKey == "" {
		// Pas encore de session : panier vide, total 0
		c.JSON(http.StatusOK, models.CartView{Items: []models.CartLine{}})
		return
	}

	repo := repository.NewCartRepo(database.DB)
	view, err := repo.ViewCart(c.Request.Context(), cartKey)
	if err != nil {
		log.Println("❌ Erreur lecture panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, view)
}

//
// ❌ POST /api/cart/remove/:itemId
//
func RemoveFromCart(c *gin.Context) {
	cartKey := c.GetString(middleware.CtxCartKey)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID article invalide"})
		return
	}

	repo := repository.NewCartRepo(database.DB)
	if err := repo.RemoveItem(c.Request.Context(), cartKey, uint(itemID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans votre panier"})
			return
		}
		log.Println("❌ Erreur suppression article:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article retiré du panier"})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	cartKey := c.GetString(middleware.CtxCartKey)
	if cartKey == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Panier déjà vide"})
		return
	}

	repo := repository.NewCartRepo(database.DB)
	if err := repo.ClearCart(c.Request.Context(), cartKey); err != nil {
		log.Println("❌ Erreur vidage panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
