package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"risearc_back_end/internal/models"
)

// JWTSecret relit le secret à chaque appel : le .env est chargé après
// l'initialisation des packages, une variable de package serait vide.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateJWT émet un token HS256 de 24h portant identité et rôle.
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
