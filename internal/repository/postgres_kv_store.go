package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"EWaste-App/internal/domain/repository"
	"EWaste-App/internal/infrastructure/database"
)

// PostgresKeyValueStore kv_storeテーブルを使うKVストア
type PostgresKeyValueStore struct {
	client *database.PostgreSQLClient
}

func NewPostgresKeyValueStore(client *database.PostgreSQLClient) repository.KeyValueStore {
	return &PostgresKeyValueStore{client: client}
}

func (s *PostgresKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.client.DB.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv_storeの取得失敗 (key: %s): %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *PostgresKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.client.DB.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("kv_storeへの保存失敗 (key: %s): %w", key, err)
	}
	return nil
}
