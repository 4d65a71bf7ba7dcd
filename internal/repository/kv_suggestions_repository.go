package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/domain/repository"
)

// storedSuggestion 保存時のJSON形式（キー名はcamelCase）
type storedSuggestion struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ContactNumber string `json:"contactNumber"`
	Website       string `json:"website,omitempty"`
	Timestamp     string `json:"timestamp"`
}

func toStoredSuggestion(s model.SuggestedCenter) storedSuggestion {
	return storedSuggestion(s)
}

func (s storedSuggestion) toModel() model.SuggestedCenter {
	return model.SuggestedCenter(s)
}

// KVSuggestionsRepository 提案リスト全体をJSON配列として1つのキーに保存する
type KVSuggestionsRepository struct {
	store repository.KeyValueStore
	key   string
}

func NewKVSuggestionsRepository(store repository.KeyValueStore, key string) repository.SuggestionsRepository {
	if key == "" {
		key = model.SuggestionsStorageKey
	}
	return &KVSuggestionsRepository{store: store, key: key}
}

// GetAll 保存済みの提案を取得する
// 値が存在しない、または配列として読めない場合は空リストを返す
func (r *KVSuggestionsRepository) GetAll(ctx context.Context) ([]model.SuggestedCenter, error) {
	data, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("提案リストの取得失敗: %w", err)
	}
	if !found || len(data) == 0 {
		return []model.SuggestedCenter{}, nil
	}

	var stored []storedSuggestion
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("⚠️ 保存済みの提案リストを読み込めません。空のリストとして扱います (key: %s): %v", r.key, err)
		return []model.SuggestedCenter{}, nil
	}

	suggestions := make([]model.SuggestedCenter, 0, len(stored))
	for _, s := range stored {
		suggestions = append(suggestions, s.toModel())
	}
	return suggestions, nil
}

// SaveAll 提案リスト全体を書き込む
func (r *KVSuggestionsRepository) SaveAll(ctx context.Context, suggestions []model.SuggestedCenter) error {
	stored := make([]storedSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		stored = append(stored, toStoredSuggestion(s))
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("提案リストのJSONマーシャル失敗: %w", err)
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("提案リストの保存失敗: %w", err)
	}
	return nil
}
