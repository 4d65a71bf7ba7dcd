package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"EWaste-App/internal/domain/repository"
	"EWaste-App/internal/infrastructure/database"
)

const supabaseKVTable = "kv_store"

// kvRow kv_storeテーブルの1行
type kvRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SupabaseKeyValueStore struct {
	client *database.SupabaseClient
}

func NewSupabaseKeyValueStore(client *database.SupabaseClient) repository.KeyValueStore {
	return &SupabaseKeyValueStore{client: client}
}

func (s *SupabaseKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rows []kvRow
	data, _, err := s.client.GetClient().From(supabaseKVTable).Select("key,value", "exact", false).Eq("key", key).Execute()
	if err != nil {
		return nil, false, fmt.Errorf("kv_storeの取得失敗 (key: %s): %w", key, err)
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, fmt.Errorf("kv_storeのJSONアンマーシャル失敗: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return []byte(rows[0].Value), true, nil
}

func (s *SupabaseKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	row := kvRow{Key: key, Value: string(value)}
	_, _, err := s.client.GetClient().From(supabaseKVTable).Insert(row, true, "key", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("kv_storeへの保存失敗 (key: %s): %w", key, err)
	}
	return nil
}
