package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/repository"
)

//
// 📊 GET /api/admin/dashboard
//
// Agrégats de supervision : comptes, catalogue, commandes et chiffre
// d'affaires (somme des total_amount — 0 sans commandes, pas une erreur).
func Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userRepo := repository.NewUserRepo(database.DB)
	productRepo := repository.NewProductRepo(database.DB)
	orderRepo := repository.NewOrderRepo(database.DB)

	totalUsers, activeUsers, err := userRepo.CountProfiles(ctx)
	if err != nil {
		log.Println("❌ Erreur stats utilisateurs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul statistiques"})
		return
	}

	totalProducts, err := productRepo.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul statistiques"})
		return
	}

	totalOrders, err := orderRepo.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul statistiques"})
		return
	}

	revenue, err := orderRepo.TotalRevenue(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul chiffre d'affaires"})
		return
	}

	recentOrders, err := orderRepo.GetRecent(ctx, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	users, err := userRepo.ListProfiles(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":    totalUsers,
		"active_users":   activeUsers,
		"total_products": totalProducts,
		"total_orders":   totalOrders,
		"total_revenue":  revenue,
		"recent_orders":  recentOrders,
		"users":          users,
	})
}
