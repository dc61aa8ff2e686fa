package utils

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/models"
)

// LogAction enregistre une action d'administration dans audit_logs.
// L'écriture est asynchrone : l'audit ne doit jamais ralentir ni faire
// échouer la requête auditée.
func LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}) {
	entry := buildEntry(c, action, resource, resourceID, oldValue, newValue, true, "")
	go func() {
		if err := database.DB.Create(&entry).Error; err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// LogFailedAction enregistre une action d'administration échouée.
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	entry := buildEntry(c, action, resource, resourceID, nil, nil, false, errorMsg)
	go func() {
		if err := database.DB.Create(&entry).Error; err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

func buildEntry(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}, success bool, errorMsg string) models.AuditLog {
	var oldStr, newStr string
	if oldValue != nil {
		if b, err := json.Marshal(oldValue); err == nil {
			oldStr = string(b)
		}
	}
	if newValue != nil {
		if b, err := json.Marshal(newValue); err == nil {
			newStr = string(b)
		}
	}

	return models.AuditLog{
		UserID:     c.GetUint("user_id"),
		UserEmail:  c.GetString("email"),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   oldStr,
		NewValue:   newStr,
		Success:    success,
		ErrorMsg:   errorMsg,
	}
}
