package model

import "time"

// 地図表示の定数
const (
	// DefaultZoom 初期表示のズーム
	DefaultZoom = 11
	// LocateZoom 現在地取得後のズーム
	LocateZoom = 13
	// SearchZoom 地名検索後のズーム
	SearchZoom = 12
	// TileMaxZoom タイルの最大ズーム
	TileMaxZoom = 18
)

// DefaultMapCenter 初期表示の中心（ムンバイ）
var DefaultMapCenter = LatLng{Lat: 19.0760, Lng: 72.8777}

// タイルレイヤーの定数
const (
	TileURLTemplate = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// マーカー種別
const (
	MarkerKindCenter = "center"
	MarkerKindUser   = "user"
)

// UserMarkerLabel 現在地マーカーのポップアップ文言
const UserMarkerLabel = "Your current location"

// 提案フォームの定数
const (
	// SuggestionsStorageKey 提案リストを保存するキー
	SuggestionsStorageKey = "recyclingCenterSuggestions"
	// DefaultSubmitDelay 送信処理の疑似待ち時間
	DefaultSubmitDelay = 1 * time.Second
	// FormResetDelay 送信完了表示からフォームをクリアするまでの時間
	FormResetDelay = 3 * time.Second
)

// 通知の種類
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// DefaultTileLayer 地図タイルの設定を返す
func DefaultTileLayer() TileLayer {
	return TileLayer{
		URLTemplate: TileURLTemplate,
		Attribution: TileAttribution,
		MaxZoom:     TileMaxZoom,
	}
}
