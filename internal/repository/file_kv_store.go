package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"EWaste-App/internal/domain/repository"
)

// FileKeyValueStore キーごとに1ファイルとしてディレクトリに保存するKVストア
type FileKeyValueStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileKeyValueStore 保存先ディレクトリを作成してストアを返す
func NewFileKeyValueStore(dir string) (*FileKeyValueStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("保存先ディレクトリが指定されていません")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("保存先ディレクトリの作成に失敗 (%s): %w", dir, err)
	}
	log.Printf("📁 File key-value store ready: %s", dir)
	return &FileKeyValueStore{dir: dir}, nil
}

var _ repository.KeyValueStore = (*FileKeyValueStore)(nil)

func (s *FileKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("キー %s の読み込みに失敗: %w", key, err)
	}
	return data, true, nil
}

// Put 一時ファイルに書き込んでからリネームする
func (s *FileKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("一時ファイルの作成に失敗: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("キー %s の書き込みに失敗: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("キー %s の書き込みに失敗: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("キー %s の保存に失敗: %w", key, err)
	}
	return nil
}

func (s *FileKeyValueStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}
