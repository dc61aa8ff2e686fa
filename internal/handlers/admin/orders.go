package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/models"
	"risearc_back_end/internal/repository"
	"risearc_back_end/internal/utils"
)

//
// 📦 GET /api/admin/orders
//
func ListOrders(c *gin.Context) {
	repo := repository.NewOrderRepo(database.DB)
	orders, err := repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🚚 PATCH /api/admin/orders/:id/status
//
// Applique une transition du graphe pending → confirmed → shipped →
// delivered (annulation depuis pending/confirmed). Toute autre
// transition est rejetée, y compris depuis un état terminal.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	repo := repository.NewOrderRepo(database.DB)
	order, err := repo.UpdateStatus(c.Request.Context(), uint(orderID), models.OrderStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTransitionInvalide):
			utils.LogFailedAction(c, "update_status", "order", c.Param("id"),
				"transition refusée vers "+input.Status)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Transition de statut non autorisée"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		default:
			log.Println("❌ Erreur mise à jour statut commande:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		}
		return
	}

	utils.LogAction(c, "update_status", "order", c.Param("id"), nil,
		gin.H{"status": order.Status})

	c.JSON(http.StatusOK, gin.H{
		"message": "Statut de la commande mis à jour",
		"order":   order,
	})
}
