package repository

import "context"

// KeyValueStore 単一キーに値全体を読み書きするストレージ
// 部分更新やトランザクションは持たない
type KeyValueStore interface {
	// Get キーの値を取得する（存在しない場合は found=false）
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put キーの値を丸ごと置き換える
	Put(ctx context.Context, key string, value []byte) error
}
