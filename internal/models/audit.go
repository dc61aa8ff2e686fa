package models

import "time"

// AuditLog trace les actions d'administration (toggle de compte,
// changement de statut de commande, CRUD catalogue).
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	UserEmail  string    `gorm:"size:255" json:"user_email"`
	Action     string    `gorm:"size:50;not null" json:"action"`
	Resource   string    `gorm:"size:50;not null" json:"resource"`
	ResourceID string    `gorm:"size:40" json:"resource_id"`
	OldValue   string    `gorm:"type:text" json:"old_value,omitempty"`
	NewValue   string    `gorm:"type:text" json:"new_value,omitempty"`
	Success    bool      `gorm:"not null;default:true" json:"success"`
	ErrorMsg   string    `gorm:"type:text" json:"error_msg,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
