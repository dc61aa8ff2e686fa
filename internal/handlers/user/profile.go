package user

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/repository"
	"risearc_back_end/internal/services"
)

//
// 👤 GET /api/profile
//
func GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	repo := repository.NewUserRepo(database.DB)
	profile, err := repo.GetProfileByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture profil"})
		return
	}

	response := gin.H{"profile": profile}
	if profile.ProfilePhoto != "" {
		if url, err := services.SignedURL(c.Request.Context(), profile.ProfilePhoto, 24*time.Hour); err == nil {
			response["photo_url"] = url
		}
	}
	c.JSON(http.StatusOK, response)
}

//
// ✏️ PUT /api/profile
//
func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		FullName      string `json:"full_name" binding:"required"`
		Address       string `json:"address" binding:"required"`
		ContactNumber string `json:"contact_number" binding:"required"`
		DateOfBirth   string `json:"date_of_birth" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date de naissance invalide (format attendu : AAAA-MM-JJ)"})
		return
	}

	repo := repository.NewUserRepo(database.DB)
	profile, err := repo.UpdateProfile(c.Request.Context(), userID,
		input.FullName, input.Address, input.ContactNumber, dob)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}
		log.Println("❌ Erreur mise à jour profil:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profil mis à jour avec succès",
		"profile": profile,
	})
}

//
// 🖼️ POST /api/profile/photo
//
func UploadProfilePhoto(c *gin.Context) {
	userID := c.GetUint("user_id")

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'photo' manquant"})
		return
	}

	objectKey, err := services.UploadFile(c.Request.Context(), "profile_photos", file)
	if err != nil {
		log.Println("❌ Erreur upload MinIO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload photo"})
		return
	}

	repo := repository.NewUserRepo(database.DB)
	if err := repo.SetProfilePhoto(c.Request.Context(), userID, objectKey); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Photo de profil mise à jour",
		"key":     objectKey,
	})
}

//
// 🏠 GET /api/dashboard — profil + historique de commandes
//
func Dashboard(c *gin.Context) {
	userID := c.GetUint("user_id")
	ctx := c.Request.Context()

	userRepo := repository.NewUserRepo(database.DB)
	profile, err := userRepo.GetProfileByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture profil"})
		return
	}

	orderRepo := repository.NewOrderRepo(database.DB)
	orders, err := orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile, // null si jamais complété
		"orders":  orders,
	})
}
