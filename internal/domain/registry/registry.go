package registry

import (
	_ "embed"
	"fmt"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"EWaste-App/internal/domain/model"
)

//go:embed centers.yaml
var centersYAML []byte

// centers 起動時に一度だけ読み込まれる読み取り専用のセンター一覧
var centers = mustLoad(centersYAML)

// All 登録済みのリサイクルセンターを定義順で返す（呼び出し側が変更しても影響しないコピー）
func All() []model.RecyclingCenter {
	result := make([]model.RecyclingCenter, len(centers))
	for i, c := range centers {
		result[i] = c.Clone()
	}
	return result
}

// Count 登録件数
func Count() int {
	return len(centers)
}

// Bounds 全センターを含む境界ボックス
func Bounds() orb.Bound {
	points := make(orb.MultiPoint, 0, len(centers))
	for _, c := range centers {
		points = append(points, orb.Point{c.Longitude, c.Latitude})
	}
	return points.Bound()
}

func mustLoad(data []byte) []model.RecyclingCenter {
	loaded, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("registry: 組み込みセンターデータの読み込みに失敗: %v", err))
	}
	return loaded
}

// Parse YAMLからセンター一覧を読み込み、不変条件を検証する
func Parse(data []byte) ([]model.RecyclingCenter, error) {
	var loaded []model.RecyclingCenter
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("YAMLのパースに失敗: %w", err)
	}
	if err := Validate(loaded); err != nil {
		return nil, err
	}
	return loaded, nil
}

// Validate IDの一意性と座標範囲を検証する
func Validate(list []model.RecyclingCenter) error {
	seen := make(map[int]struct{}, len(list))
	for _, c := range list {
		if c.ID <= 0 {
			return fmt.Errorf("センターIDは正の整数である必要があります: %d", c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("センターIDが重複しています: %d", c.ID)
		}
		seen[c.ID] = struct{}{}

		if !c.ToLatLng().IsValid() {
			return fmt.Errorf("センター %d の座標が範囲外です: (%f, %f)", c.ID, c.Latitude, c.Longitude)
		}
	}
	return nil
}
