package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"EWaste-App/internal/domain/repository"
	"EWaste-App/internal/infrastructure/storage"
)

const s3KVPrefix = "kv/"

// S3KeyValueStore キーごとに1オブジェクトとして保存するKVストア
type S3KeyValueStore struct {
	client *storage.MinIOClient
}

func NewS3KeyValueStore(client *storage.MinIOClient) repository.KeyValueStore {
	return &S3KeyValueStore{client: client}
}

func (s *S3KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	objectName := s.objectName(key)
	obj, err := s.client.GetClient().GetObject(ctx, s.client.Bucket(), objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get object %s: %w", objectName, err)
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read object %s: %w", objectName, err)
	}
	return data, true, nil
}

func (s *S3KeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	objectName := s.objectName(key)
	_, err := s.client.GetClient().PutObject(ctx, s.client.Bucket(), objectName, bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}
	return nil
}

func (s *S3KeyValueStore) objectName(key string) string {
	return s3KVPrefix + key + ".json"
}
