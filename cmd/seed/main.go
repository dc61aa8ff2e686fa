package main

import (
	"errors"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"risearc_back_end/internal/config"
	"risearc_back_end/internal/database"
	"risearc_back_end/internal/models"
	"risearc_back_end/internal/services"
	"risearc_back_end/internal/utils"
)

// Provisionnement idempotent : compte admin, catégories et produits de
// démonstration. Relançable à volonté — rien n'est dupliqué, rien n'est
// écrasé hors du mot de passe admin.
func main() {
	config.Load()
	database.ConnectDatabases()

	log.Println("🚀 Provisionnement RiseArc…")

	seedAdmin()
	seedCatalog()

	log.Println("✅ Provisionnement terminé")
}

func seedAdmin() {
	email := getEnv("ADMIN_EMAIL", "admin@risearc.com")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("❌ ADMIN_PASSWORD manquant dans .env")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("❌ Erreur hashage mot de passe admin:", err)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		res := tx.Where("email = ?", email).First(&admin)
		switch {
		case res.Error == nil:
			admin.Password = hash
			admin.Role = models.RoleAdmin
			if err := tx.Save(&admin).Error; err != nil {
				return err
			}
			log.Println("✅ Admin mis à jour :", email)
		case errors.Is(res.Error, gorm.ErrRecordNotFound):
			admin = models.User{Email: email, Password: hash, Role: models.RoleAdmin}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
			profile := models.UserProfile{UserID: admin.ID, FullName: "Administrateur RiseArc", IsActive: true}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			log.Println("✅ Admin créé :", email)
		default:
			return res.Error
		}
		return nil
	})
	if err != nil {
		log.Fatal("❌ Erreur provisionnement admin:", err)
	}
}

func seedCatalog() {
	categories := []models.Category{
		{Name: "Premium Mens Collection", Description: "Sophisticated clothing for the modern gentleman"},
		{Name: "Elite Womens Fashion", Description: "Luxury fashion for the contemporary woman"},
		{Name: "Signature Accessories", Description: "Premium accessories that complete your look"},
		{Name: "Designer Footwear", Description: "Handcrafted shoes for every occasion"},
	}

	// Insertion sans doublon : la contrainte unique sur name fait foi.
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&categories).Error; err != nil {
		log.Fatal("❌ Erreur création catégories:", err)
	}

	categoryIDs := map[string]uint{}
	var existing []models.Category
	if err := database.DB.Find(&existing).Error; err != nil {
		log.Fatal("❌ Erreur lecture catégories:", err)
	}
	for _, c := range existing {
		categoryIDs[c.Name] = c.ID
	}

	type seedProduct struct {
		name, description, category, price string
		stock                              int
	}
	seeds := []seedProduct{
		{"RiseArc Signature Polo", "Premium cotton polo shirt with signature RiseArc emblem. Crafted from the finest materials for ultimate comfort and style.", "Premium Mens Collection", "89.99", 50},
		{"Executive Blazer", "Tailored blazer for the modern professional. Perfect fit and premium fabric for business excellence.", "Premium Mens Collection", "299.99", 25},
		{"Comfort Chinos", "Premium comfort chinos for everyday elegance. Versatile and stylish for any occasion.", "Premium Mens Collection", "129.99", 40},
		{"Classic Denim Jeans", "Premium quality denim jeans with perfect fit. Timeless style meets modern comfort.", "Premium Mens Collection", "149.99", 35},
		{"Elegance Dress", "Sophisticated evening dress for special occasions. Designed to make you feel confident and beautiful.", "Elite Womens Fashion", "199.99", 30},
		{"Power Suit Jacket", "Empowering blazer for the confident woman. Professional elegance meets modern style.", "Elite Womens Fashion", "249.99", 20},
		{"Silk Scarf Collection", "Luxurious silk scarves in various designs. The perfect accessory for any outfit.", "Elite Womens Fashion", "79.99", 35},
		{"Designer Blouse", "Elegant blouse perfect for office wear. Sophisticated design with premium fabric.", "Elite Womens Fashion", "119.99", 28},
		{"RiseArc Luxury Watch", "Premium timepiece with RiseArc craftsmanship. Precision meets elegance in every detail.", "Signature Accessories", "599.99", 15},
		{"Designer Handbag", "Handcrafted leather bag with premium finish. Luxury and functionality in perfect harmony.", "Signature Accessories", "399.99", 25},
		{"Premium Wallet", "Genuine leather wallet with RFID protection. Style and security combined.", "Signature Accessories", "89.99", 40},
		{"Signature Sunglasses", "Designer sunglasses with UV protection. Fashion meets functionality.", "Signature Accessories", "159.99", 30},
		{"Premium Sneakers", "Comfortable and stylish sneakers for everyday wear. Premium materials and modern design.", "Designer Footwear", "179.99", 45},
		{"Leather Oxford Shoes", "Classic leather oxford shoes for formal occasions. Timeless elegance and superior craftsmanship.", "Designer Footwear", "259.99", 30},
		{"Casual Loafers", "Comfortable loafers for casual and semi-formal occasions. Perfect blend of style and comfort.", "Designer Footwear", "199.99", 35},
		{"Athletic Running Shoes", "High-performance running shoes with advanced cushioning. Built for comfort and durability.", "Designer Footwear", "149.99", 50},
	}

	created := 0
	for _, s := range seeds {
		categoryID, ok := categoryIDs[s.category]
		if !ok {
			log.Fatal("❌ Catégorie de seed inconnue :", s.category)
		}

		product := models.Product{
			Name:        s.name,
			Description: s.description,
			CategoryID:  categoryID,
			Price:       decimal.RequireFromString(s.price),
			Stock:       s.stock,
			IsActive:    true,
		}

		res := database.DB.Where("name = ?", s.name).FirstOrCreate(&product)
		if res.Error != nil {
			log.Fatal("❌ Erreur création produit:", res.Error)
		}
		if res.RowsAffected > 0 {
			created++
			log.Printf("🆕 Produit créé : %s — %s €", product.Name, s.price)
		}
		services.IndexProduct(product)
	}

	log.Printf("✅ Catalogue provisionné (%d nouveau(x) produit(s))", created)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
