package model

import "math"

// LatLng 緯度経度を表す基本的な型（ユーザー位置・地図中心などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsValid 緯度経度が有限かつ有効範囲内かチェック
func (l LatLng) IsValid() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) || math.IsInf(l.Lat, 0) || math.IsInf(l.Lng, 0) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// RecyclingCenter 電子廃棄物リサイクルセンターを表すモデル
type RecyclingCenter struct {
	ID            int      `json:"id" yaml:"id"`                                             // レジストリ内で一意なID
	Name          string   `json:"name" yaml:"name"`                                         // センター名
	Address       string   `json:"address" yaml:"address"`                                   // 住所
	Latitude      float64  `json:"latitude" yaml:"latitude"`                                 // 緯度（WGS-84）
	Longitude     float64  `json:"longitude" yaml:"longitude"`                               // 経度（WGS-84）
	Phone         string   `json:"phone,omitempty" yaml:"phone,omitempty"`                   // 電話番号（任意）
	Email         string   `json:"email,omitempty" yaml:"email,omitempty"`                   // メール（任意）
	Hours         string   `json:"hours,omitempty" yaml:"hours,omitempty"`                   // 営業時間（任意）
	AcceptedItems []string `json:"accepted_items,omitempty" yaml:"accepted_items,omitempty"` // 受け入れ品目（任意・順序あり）
}

// ToLatLng センターの位置情報をLatLng型に変換
func (c *RecyclingCenter) ToLatLng() LatLng {
	return LatLng{Lat: c.Latitude, Lng: c.Longitude}
}

// HasPhone 電話番号が設定されているかチェック
func (c *RecyclingCenter) HasPhone() bool {
	return c.Phone != ""
}

// HasEmail メールアドレスが設定されているかチェック
func (c *RecyclingCenter) HasEmail() bool {
	return c.Email != ""
}

// HasHours 営業時間が設定されているかチェック
func (c *RecyclingCenter) HasHours() bool {
	return c.Hours != ""
}

// Clone スライスを含めてコピーを返す
func (c RecyclingCenter) Clone() RecyclingCenter {
	if c.AcceptedItems != nil {
		items := make([]string, len(c.AcceptedItems))
		copy(items, c.AcceptedItems)
		c.AcceptedItems = items
	}
	return c
}

// RankedCenter 基準地点からの距離付きセンター
type RankedCenter struct {
	RecyclingCenter
	DistanceKm   float64 `json:"distance_km"`
	DistanceText string  `json:"distance_text"`
}

// GeocodeResult ジオコーディング結果（最初の1件）
type GeocodeResult struct {
	Location    LatLng `json:"location"`
	DisplayName string `json:"display_name"`
}
