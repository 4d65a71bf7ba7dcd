package helper

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"EWaste-App/internal/domain/model"
)

// CenterToPoint センターを orb.Point（[経度, 緯度]）に変換
func CenterToPoint(center *model.RecyclingCenter) orb.Point {
	return orb.Point{center.Longitude, center.Latitude}
}

// PointToLatLng orb.Point を LatLng に変換
func PointToLatLng(point orb.Point) model.LatLng {
	return model.LatLng{Lat: point.Lat(), Lng: point.Lon()}
}

// CentersToFeatureCollection センター一覧を GeoJSON FeatureCollection に変換
// origin が指定された場合は各Featureに距離を付与する
func CentersToFeatureCollection(centers []model.RecyclingCenter, origin *model.LatLng) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	points := make(orb.MultiPoint, 0, len(centers))
	for i := range centers {
		c := &centers[i]
		point := CenterToPoint(c)
		points = append(points, point)

		feature := geojson.NewFeature(point)
		feature.ID = c.ID
		feature.Properties["id"] = c.ID
		feature.Properties["name"] = c.Name
		feature.Properties["address"] = c.Address
		if c.HasPhone() {
			feature.Properties["phone"] = c.Phone
		}
		if c.HasEmail() {
			feature.Properties["email"] = c.Email
		}
		if c.HasHours() {
			feature.Properties["hours"] = c.Hours
		}
		if len(c.AcceptedItems) > 0 {
			feature.Properties["accepted_items"] = c.AcceptedItems
		}
		if origin != nil {
			km := DistanceToCenter(*origin, c)
			feature.Properties["distance_km"] = km
			feature.Properties["distance_text"] = FormatDistance(km)
		}

		fc.Append(feature)
	}

	if len(points) > 0 {
		fc.BBox = geojson.NewBBox(points.Bound())
	}

	return fc
}
