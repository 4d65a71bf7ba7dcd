package repository

import (
	"context"

	"EWaste-App/internal/domain/model"
)

// GeocodingRepository は地名から座標を解決する外部サービスのインターフェース
type GeocodingRepository interface {
	// Search は最初の1件を返す。0件の場合は model.ErrLocationNotFound、
	// 通信・パース失敗は model.ErrSearchTransport をラップして返す
	Search(ctx context.Context, query string) (*model.GeocodeResult, error)
}
