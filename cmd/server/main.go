package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"risearc_back_end/internal/config"
	"risearc_back_end/internal/database"
	"risearc_back_end/internal/middleware"
	"risearc_back_end/internal/routes"
	"risearc_back_end/internal/services"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	services.ConnectMinio()
	middleware.InitSessionStore()

	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur RiseArc lancé sur le port", port)
	r.Run(":" + port)
}

// warmupRedisCache établit la connexion Redis avant la première requête.
func warmupRedisCache() {
	if err := database.Redis.Ping(context.Background()).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
