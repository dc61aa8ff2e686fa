package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/repository"
	"risearc_back_end/internal/utils"
)

//
// 🔄 POST /api/admin/users/:id/toggle-status
//
// Inverse le flag d'activation du profil visé. Idempotent en involution :
// deux appels ramènent le profil à son état d'origine.
func ToggleUserStatus(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID profil invalide"})
		return
	}

	repo := repository.NewUserRepo(database.DB)
	profile, err := repo.ToggleActive(c.Request.Context(), uint(profileID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogFailedAction(c, "toggle_status", "user_profile", c.Param("id"), "profil introuvable")
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}
		log.Println("❌ Erreur toggle statut:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}

	utils.LogAction(c, "toggle_status", "user_profile", c.Param("id"),
		gin.H{"is_active": !profile.IsActive}, gin.H{"is_active": profile.IsActive})

	c.JSON(http.StatusOK, gin.H{
		"message":   "Statut utilisateur mis à jour",
		"is_active": profile.IsActive,
		"profile":   profile,
	})
}

//
// 👥 GET /api/admin/users
//
func ListUsers(c *gin.Context) {
	repo := repository.NewUserRepo(database.DB)
	profiles, err := repo.ListProfiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": profiles})
}
