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
	"risearc_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

// Register crée le compte et son profil. L'email sert d'identifiant de
// connexion : un email déjà pris ⇒ 409, aucun doublon créé.
func Register(c *gin.Context) {
	var input struct {
		Email         string `json:"email" binding:"required,email"`
		Password      string `json:"password" binding:"required,min=8"`
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
	newUser, err := repo.Register(c.Request.Context(), repository.RegisterInput{
		Email:         input.Email,
		Password:      input.Password,
		FullName:      input.FullName,
		Address:       input.Address,
		ContactNumber: input.ContactNumber,
		DateOfBirth:   dob,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailDejaUtilise) {
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
			return
		}
		log.Println("❌ Erreur inscription:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(*newUser)
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("🆕 Compte créé : %s", newUser.Email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Inscription réussie",
		"token":   token,
		"userId":  newUser.ID,
		"email":   newUser.Email,
		"role":    newUser.Role,
	})
}

// Login vérifie les credentials puis l'activation du profil.
// Credentials corrects mais profil désactivé ⇒ 403, aucun token émis.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	repo := repository.NewUserRepo(database.DB)
	account, err := repo.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCompteInactif):
			c.JSON(http.StatusForbidden, gin.H{"error": "Votre compte est inactif. Veuillez contacter un administrateur"})
		case errors.Is(err, repository.ErrIdentifiantsInvalides):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		default:
			log.Println("❌ Erreur login:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion"})
		}
		return
	}

	token, err := utils.GenerateJWT(*account)
	if err != nil {
		log.Println("❌ Erreur génération JWT:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": account.ID,
		"email":  account.Email,
		"role":   account.Role,
	})
}

// Logout côté API stateless : le client jette son token.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

// Me renvoie l'identité du token avec le profil associé.
func Me(c *gin.Context) {
	userID := c.GetUint("user_id")

	repo := repository.NewUserRepo(database.DB)
	account, err := repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":  account.ID,
		"email":   account.Email,
		"role":    account.Role,
		"profile": account.Profile,
	})
}
