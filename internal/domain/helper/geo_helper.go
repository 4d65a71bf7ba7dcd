package helper

import (
	"fmt"
	"math"
	"sort"

	"EWaste-App/internal/domain/model"
)

const earthRadiusKm = 6371.0

// DistanceKm は2地点間の大圏距離をハバーサイン公式で計算する (km)
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// HaversineDistance は2つのLatLng間の距離を計算する (km)
func HaversineDistance(p1, p2 model.LatLng) float64 {
	return DistanceKm(p1.Lat, p1.Lng, p2.Lat, p2.Lng)
}

// DistanceToCenter は基準地点からセンターまでの距離を計算する (km)
func DistanceToCenter(origin model.LatLng, center *model.RecyclingCenter) float64 {
	return HaversineDistance(origin, center.ToLatLng())
}

// FormatDistance は距離を小数点1桁の "km away" 表記にする
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f km away", km)
}

// RankByDistance は基準地点から近い順にセンターを並べ、距離を付与して返す
// 距離が同じ場合は元の順序を保つ
func RankByDistance(origin model.LatLng, centers []model.RecyclingCenter) []model.RankedCenter {
	ranked := make([]model.RankedCenter, len(centers))
	for i := range centers {
		km := DistanceToCenter(origin, &centers[i])
		ranked[i] = model.RankedCenter{
			RecyclingCenter: centers[i],
			DistanceKm:      km,
			DistanceText:    FormatDistance(km),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked
}

// FindNearest は最も近いセンターを返す（空の場合はnil）
func FindNearest(origin model.LatLng, centers []model.RecyclingCenter) *model.RankedCenter {
	if len(centers) == 0 {
		return nil
	}
	ranked := RankByDistance(origin, centers)
	return &ranked[0]
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
