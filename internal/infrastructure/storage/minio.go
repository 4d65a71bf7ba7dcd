package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient is a client for S3-compatible storage.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient connects to the MinIO endpoint and makes sure the bucket exists.
func NewMinIOClient(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIOClient, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required settings: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	c := &MinIOClient{client: minioClient, bucket: bucket}
	if err := c.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	log.Println("✅ Successfully connected to MinIO endpoint:", endpoint)
	return c, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (c *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}
	log.Printf("🪣 Created bucket: %s", c.bucket)
	return nil
}

// GetClient returns the underlying MinIO client.
func (c *MinIOClient) GetClient() *minio.Client {
	return c.client
}

// Bucket returns the bucket name.
func (c *MinIOClient) Bucket() string {
	return c.bucket
}
