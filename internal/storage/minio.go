package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"

	"quiz-content-service/internal/config"
	"quiz-content-service/internal/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioAssetStore stores quiz binaries in a MinIO bucket. References handed
// back to callers are bucket-relative object paths.
type MinioAssetStore struct {
	client *minio.Client
	bucket string
}

func NewMinioAssetStore(cfg *config.MinIOConfig) (*MinioAssetStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		log.Printf("Error initializing MinIO client: %v", err)
		return nil, err
	}

	exists, err := client.BucketExists(context.Background(), cfg.QuizBucket)
	if err != nil {
		log.Printf("Error checking if bucket %s exists: %v", cfg.QuizBucket, err)
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(context.Background(), cfg.QuizBucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			log.Printf("Error creating bucket %s: %v", cfg.QuizBucket, err)
			return nil, err
		}
		log.Printf("Created bucket: %s", cfg.QuizBucket)
	}

	return &MinioAssetStore{client: client, bucket: cfg.QuizBucket}, nil
}

// Upload stores the file under a fresh object name below prefix and returns
// the object path as the asset reference.
func (s *MinioAssetStore) Upload(ctx context.Context, prefix string, file models.UploadFile) (string, error) {
	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), filepath.Ext(file.Name))

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(file.Content), int64(len(file.Content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("Error uploading %s to MinIO: %v", objectName, err)
		return "", err
	}

	return objectName, nil
}

// Remove deletes the object behind ref. MinIO treats removal of a missing
// object as success, so Remove is idempotent.
func (s *MinioAssetStore) Remove(ctx context.Context, ref string) error {
	err := s.client.RemoveObject(ctx, s.bucket, ref, minio.RemoveObjectOptions{})
	if err != nil {
		log.Printf("Error deleting %s from MinIO: %v", ref, err)
	}
	return err
}
