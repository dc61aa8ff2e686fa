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
	"risearc_back_end/internal/repository"
	"risearc_back_end/internal/utils"
)

//
// 📦 POST /api/orders
//
// Matérialise le panier de la session en commande : snapshot des prix,
// total, statut "pending", panier vidé — le tout dans une transaction.
func CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")
	cartKey := c.GetString(middleware.CtxCartKey)
	if cartKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou introuvable"})
		return
	}

	orderRepo := repository.NewOrderRepo(database.DB)
	order, err := orderRepo.CreateFromCart(c.Request.Context(), userID, cartKey)
	if err != nil {
		if errors.Is(err, repository.ErrPanierVide) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
			return
		}
		log.Println("❌ Erreur création commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	log.Printf("✅ Commande #%d créée (%s€) pour user %d", order.ID, order.TotalAmount.StringFixed(2), userID)

	// Email de confirmation en best-effort, jamais bloquant
	if email := c.GetString("email"); email != "" {
		full, err := orderRepo.GetByID(c.Request.Context(), order.ID, userID)
		if err == nil {
			names := make(map[uint]string, len(full.Items))
			for _, item := range full.Items {
				if item.Product != nil {
					names[item.ProductID] = item.Product.Name
				}
			}
			go func() {
				if err := utils.SendOrderConfirmationEmail(email, full, names); err != nil {
					log.Println("⚠️ Échec envoi email de confirmation:", err)
				}
			}()
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée avec succès",
		"order":   order,
	})
}

//
// 📜 GET /api/orders
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetUint("user_id")

	repo := repository.NewOrderRepo(database.DB)
	orders, err := repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🔍 GET /api/orders/:id
//
func GetOrderByID(c *gin.Context) {
	userID := c.GetUint("user_id")

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	repo := repository.NewOrderRepo(database.DB)
	// Sécurité : on vérifie que la commande appartient bien à l'utilisateur
	order, err := repo.GetByID(c.Request.Context(), uint(orderID), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}

	c.JSON(http.StatusOK, order)
}
