package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"risearc_back_end/internal/handlers/admin"
	"risearc_back_end/internal/handlers/product"
	"risearc_back_end/internal/handlers/user"
	"risearc_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(corsConfig()))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Vitrine publique
	api.GET("/home", product.Home)
	api.GET("/products", product.ListProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/categories", product.ListCategories)

	// Authentification
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/logout", user.Logout)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
	}

	// Panier — porté par la session, pas par le compte. Les lectures ne
	// posent pas de cookie, seules les mutations créent la clé de panier.
	cart := api.Group("/cart")
	{
		cart.GET("", middleware.CartSession(false), user.GetCart)
		cart.POST("/add/:productId", middleware.CartSession(true), middleware.CartRateLimit(), user.AddToCart)
		cart.POST("/remove/:itemId", middleware.CartSession(false), user.RemoveFromCart)
		cart.DELETE("", middleware.CartSession(false), user.ClearCart)
	}

	// Commandes — compte requis, panier lu depuis la session
	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.POST("", middleware.CartSession(false), user.CreateOrder)
		orders.GET("", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
	}

	// Espace client
	account := api.Group("")
	account.Use(middleware.AuthRequired())
	{
		account.GET("/dashboard", user.Dashboard)
		account.GET("/profile", user.GetProfile)
		account.PUT("/profile", user.UpdateProfile)
		account.POST("/profile/photo", user.UploadProfilePhoto)
	}

	// Administration
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.GET("/dashboard", admin.Dashboard)

		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.POST("/users/:id/toggle-status", admin.ToggleUserStatus)

		adminGroup.GET("/orders", admin.ListOrders)
		adminGroup.PATCH("/orders/:id/status", admin.UpdateOrderStatus)

		adminGroup.POST("/products", admin.CreateProduct)
		adminGroup.PUT("/products/:id", admin.UpdateProduct)
		adminGroup.DELETE("/products/:id", admin.DeleteProduct)
		adminGroup.POST("/products/:id/image", admin.UploadProductImage)

		adminGroup.POST("/categories", admin.CreateCategory)
		adminGroup.PUT("/categories/:id", admin.UpdateCategory)
		adminGroup.DELETE("/categories/:id", admin.DeleteCategory)
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	return cfg
}
