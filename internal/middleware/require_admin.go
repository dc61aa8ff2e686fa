package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"risearc_back_end/internal/models"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin".
// Contrairement à l'ancien site qui redirigeait silencieusement,
// on renvoie un 403 explicite.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
