package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"risearc_back_end/internal/models"
)

// --- Variables Globales ---
var (
	DB      *gorm.DB
	Redis   *redis.Client
	Elastic *elasticsearch.Client
)

// ConnectDatabases initialise Postgres, Redis et Elasticsearch.
// Postgres et Redis sont obligatoires ; Elasticsearch est optionnel
// (la recherche retombe sur SQL s'il est absent).
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectPostgres()
	connectRedis(ctx)
	connectElastic()

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// POSTGRES (GORM)
// =============================================
func connectPostgres() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_USER", "risearc"),
		os.Getenv("POSTGRES_PASSWORD"),
		getEnv("POSTGRES_DB", "risearc"),
		getEnv("POSTGRES_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Erreur connexion Postgres:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("❌ Erreur migration Postgres:", err)
	}

	DB = db
	log.Println("✅ Connecté à Postgres")
}

// Migrate crée/ajuste le schéma pour l'ensemble des modèles.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	)
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_HOST", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL absent — recherche produits en SQL uniquement")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable — recherche produits en SQL uniquement:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
