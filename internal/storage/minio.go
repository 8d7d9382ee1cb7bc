package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// PhotoStorage keeps item photos in a MinIO bucket. Items reference a
// photo by its object key; presigned URLs are minted on read.
type PhotoStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewPhotoStorage connects to MinIO and makes sure the bucket exists.
func NewPhotoStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *zap.Logger) (*PhotoStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Info("Created photo bucket", zap.String("bucket", bucket))
	}

	logger.Info("Photo storage initialized",
		zap.String("endpoint", endpoint),
		zap.String("bucket", bucket))

	return &PhotoStorage{client: client, bucket: bucket, logger: logger}, nil
}

// UploadPhoto stores a photo and returns its object key.
func (s *PhotoStorage) UploadPhoto(ctx context.Context, reader io.Reader, filename, contentType string, size int64) (string, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("photos/%s/%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	s.logger.Info("Photo uploaded",
		zap.String("filename", filename),
		zap.String("key", key))

	return key, nil
}

// PhotoURL returns a presigned GET URL for the given object key.
func (s *PhotoStorage) PhotoURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign photo URL: %w", err)
	}
	return u.String(), nil
}

// DeletePhoto removes a photo by object key.
func (s *PhotoStorage) DeletePhoto(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

// HealthCheck verifies the bucket is reachable.
func (s *PhotoStorage) HealthCheck(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}
