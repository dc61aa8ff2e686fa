package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/models"
)

// newTestDB ouvre une base SQLite en mémoire avec le schéma complet.
// Une seule connexion : chaque connexion du pool aurait sinon sa propre
// base mémoire.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Description: "catégorie de test"}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, categoryID uint, name, price string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Description: "produit de test",
		CategoryID:  categoryID,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&user).Error)
	return user
}
