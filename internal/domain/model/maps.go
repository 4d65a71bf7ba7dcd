package model

// MapView 地図の表示状態
type MapView struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}

// TileLayer 地図タイルの取得先と帰属表示
type TileLayer struct {
	URLTemplate string `json:"url_template"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"max_zoom"`
}

// Popup マーカーに紐づくポップアップ内容
type Popup struct {
	Title         string   `json:"title"`
	Address       string   `json:"address,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	Hours         string   `json:"hours,omitempty"`
	AcceptedItems []string `json:"accepted_items,omitempty"`
	DistanceKm    *float64 `json:"distance_km,omitempty"`   // ユーザー位置が分かっている場合のみ
	DistanceText  string   `json:"distance_text,omitempty"` // 例: "3.2 km away"
	HTML          string   `json:"html"`
}

// HasDistance 距離情報が含まれているかチェック
func (p *Popup) HasDistance() bool {
	return p.DistanceKm != nil
}

// Marker 地図上のマーカー
type Marker struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`                // "center" or "user"
	CenterID int    `json:"center_id,omitempty"` // kindがcenterの場合
	Position LatLng `json:"position"`
	Popup    Popup  `json:"popup"`
}

// MapSnapshot 地図セッションの現在の状態
type MapSnapshot struct {
	MapID        string    `json:"map_id"`
	Container    string    `json:"container"`
	View         MapView   `json:"view"`
	TileLayer    TileLayer `json:"tile_layer"`
	Markers      []Marker  `json:"markers"`
	UserLocation *LatLng   `json:"user_location,omitempty"`
	UserMarker   *Marker   `json:"user_marker,omitempty"`
	Searching    bool      `json:"searching"`
}

// InitializeMapRequest 地図初期化リクエスト
type InitializeMapRequest struct {
	Container string `json:"container" binding:"required"`
}

// LocateRequest 端末の位置取得結果
// 座標がない場合は位置情報機能なし、errorがある場合は取得失敗として扱う
type LocateRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error,omitempty"`
}

// SearchLocationRequest 地名検索リクエスト
type SearchLocationRequest struct {
	Query string `json:"query"`
}

// LocateResponse 現在地取得のレスポンス
type LocateResponse struct {
	UserLocation LatLng       `json:"user_location"`
	Map          MapSnapshot  `json:"map"`
	Notification Notification `json:"notification"`
}

// SearchLocationResponse 地名検索のレスポンス
type SearchLocationResponse struct {
	Result       GeocodeResult `json:"result"`
	Map          MapSnapshot   `json:"map"`
	Notification Notification  `json:"notification"`
}
