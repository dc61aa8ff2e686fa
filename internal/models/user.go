package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User porte uniquement l'identité et les credentials.
// Tout le reste (adresse, téléphone, activation…) vit dans UserProfile.
type User struct {
	ID        uint         `gorm:"primaryKey" json:"user_id"`
	Email     string       `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string       `gorm:"size:255;not null" json:"-"`
	Role      string       `gorm:"size:20;not null;default:customer" json:"role"`
	CreatedAt time.Time    `json:"created_at"`
	Profile   *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Orders    []Order      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserProfile est en un-pour-un avec User.
// IsActive bloque le login indépendamment de la validité des credentials.
type UserProfile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName      string    `gorm:"size:100;not null" json:"full_name"`
	Address       string    `gorm:"type:text" json:"address"`
	ContactNumber string    `gorm:"size:15" json:"contact_number"`
	DateOfBirth   time.Time `gorm:"type:date" json:"date_of_birth"`
	ProfilePhoto  string    `gorm:"size:255" json:"profile_photo,omitempty"` // clé d'objet MinIO
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
