package admin

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"risearc_back_end/internal/database"
	"risearc_back_end/internal/models"
)

// setupHandlerTest branche les globals sur une base SQLite en mémoire.
// Le client Redis pointe dans le vide : les invalidations de cache
// échouent silencieusement, comme quand Redis est injoignable.
func setupHandlerTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db
	database.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return db
}

func putProduct(t *testing.T, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/admin/products/"+id, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id}}

	UpdateProduct(c)
	return w
}

func TestUpdateProductKeepsImageAndStateOfInactiveProduct(t *testing.T) {
	db := setupHandlerTest(t)

	category := models.Category{Name: "Premium Mens Collection"}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		Name:        "RiseArc Signature Polo",
		Description: "Premium cotton polo shirt",
		CategoryID:  category.ID,
		Price:       decimal.RequireFromString("89.99"),
		Stock:       50,
		Image:       "products/abc-polo.jpg",
		IsActive:    true,
	}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Model(&product).Update("is_active", false).Error)

	// Édition sans champ is_active ni image.
	w := putProduct(t, "1",
		`{"name":"RiseArc Signature Polo","description":"Premium cotton polo shirt","category_id":1,"price":"99.99","stock":40}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	require.Equal(t, "products/abc-polo.jpg", reloaded.Image,
		"la clé d'image doit survivre à l'édition d'un produit désactivé")
	require.False(t, reloaded.IsActive,
		"is_active omis ⇒ l'état courant est conservé, pas de réactivation implicite")
	require.True(t, reloaded.Price.Equal(decimal.RequireFromString("99.99")))
	require.Equal(t, 40, reloaded.Stock)
}

func TestUpdateProductExplicitReactivation(t *testing.T) {
	db := setupHandlerTest(t)

	category := models.Category{Name: "Designer Footwear"}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		Name:        "Premium Sneakers",
		Description: "Comfortable and stylish sneakers",
		CategoryID:  category.ID,
		Price:       decimal.RequireFromString("179.99"),
		Stock:       45,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Model(&product).Update("is_active", false).Error)

	w := putProduct(t, "1",
		`{"name":"Premium Sneakers","description":"Comfortable and stylish sneakers","category_id":1,"price":"179.99","stock":45,"is_active":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	require.True(t, reloaded.IsActive, "is_active explicite doit être appliqué")
}

func TestUpdateProductUnknownID(t *testing.T) {
	setupHandlerTest(t)

	w := putProduct(t, "9999",
		`{"name":"Fantôme","description":"n'existe pas","category_id":1,"price":"10.00","stock":1}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}
