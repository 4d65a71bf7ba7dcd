package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"EWaste-App/internal/domain/repository"
)

const firestoreKVCollection = "keyValueStore"

// firestoreKVDocument Firestoreに保存するドキュメント
type firestoreKVDocument struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// FirestoreKeyValueStore キーをドキュメントIDとして保存するKVストア
type FirestoreKeyValueStore struct {
	client *firestore.Client
}

func NewFirestoreKeyValueStore(client *firestore.Client) repository.KeyValueStore {
	return &FirestoreKeyValueStore{client: client}
}

func (s *FirestoreKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	doc, err := s.client.Collection(firestoreKVCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("ドキュメントの取得に失敗しました (key: %s): %w", key, err)
	}

	var data firestoreKVDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, false, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	return []byte(data.Value), true, nil
}

func (s *FirestoreKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.Collection(firestoreKVCollection).Doc(key).Set(ctx, firestoreKVDocument{
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("ドキュメントの保存に失敗しました (key: %s): %w", key, err)
	}
	return nil
}
