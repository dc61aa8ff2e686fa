package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var MinioClient *minio.Client

// ConnectMinio initialise le client MinIO pour les photos de profil et
// les images produit. Optionnel : sans MinIO, l'upload renvoie une erreur
// mais le reste du site fonctionne.
func ConnectMinio() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT absent — upload d'images désactivé")
		return
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}

	bucket := bucketName()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Println("⚠️ Erreur vérification bucket MinIO:", err)
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ Erreur création bucket MinIO:", err)
			return
		}
		log.Println("🪣 Bucket créé :", bucket)
	}

	MinioClient = client
	log.Println("✅ Connecté à MinIO :", endpoint)
}

// UploadFile pousse un fichier multipart sous prefix/uuid-nom et renvoie
// la clé d'objet, stockée telle quelle dans Postgres.
func UploadFile(ctx context.Context, prefix string, file *multipart.FileHeader) (string, error) {
	if MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectKey := fmt.Sprintf("%s/%s-%s", prefix, uuid.NewString(), file.Filename)
	_, err = MinioClient.PutObject(ctx, bucketName(), objectKey, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

// SignedURL renvoie une URL de lecture temporaire pour une clé d'objet.
func SignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	if MinioClient == nil || objectKey == "" {
		return "", fmt.Errorf("MinIO non initialisé")
	}
	u, err := MinioClient.PresignedGetObject(ctx, bucketName(), objectKey, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func bucketName() string {
	if b := os.Getenv("MINIO_BUCKET"); b != "" {
		return b
	}
	return "risearc"
}
