package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"strings"

	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"

	"elvara_back_end/internal/database"
)

// UploadProductImage dépose l'image du produit dans le bucket MinIO sous
// products/<product_id><ext> et retourne l'URL publique.
func UploadProductImage(ctx context.Context, productID gocql.UUID, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("products/%s%s", productID.String(), path.Ext(file.Filename))

	_, err = database.MinIO.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName), nil
}

// RemoveProductImage supprime l'objet correspondant à une URL générée par
// UploadProductImage. Best effort: un objet déjà absent n'est pas une erreur.
func RemoveProductImage(ctx context.Context, imageURL string) error {
	if database.MinIO == nil || imageURL == "" {
		return nil
	}
	bucket := os.Getenv("MINIO_BUCKET")
	marker := "/" + bucket + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return nil
	}
	objectName := imageURL[idx+len(marker):]
	if objectName == "" {
		return nil
	}
	return database.MinIO.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
}
