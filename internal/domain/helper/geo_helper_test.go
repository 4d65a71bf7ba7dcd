package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/domain/registry"
)

func TestDistanceKm_ReferencePoints(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"BKC → Andheri", 19.0596, 72.8656, 19.1136, 72.8697, 6.02},
		{"Lower Parel → Malad", 19.0144, 72.8318, 19.1847, 72.8492, 19.02},
		{"地図中心 → BKC", 19.0760, 72.8777, 19.0596, 72.8656, 2.22},
		{"赤道の対蹠点", 0, 0, 0, 180, 20015.09},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2), 0.05)
		})
	}
}

func TestDistanceKm_SymmetricAndZero(t *testing.T) {
	points := []model.LatLng{
		{Lat: 19.0596, Lng: 72.8656},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 51.5074, Lng: -0.1278},
		{Lat: 89.9, Lng: -179.9},
	}
	for _, a := range points {
		assert.Equal(t, 0.0, DistanceKm(a.Lat, a.Lng, a.Lat, a.Lng))
		for _, b := range points {
			assert.Equal(t, DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng), DistanceKm(b.Lat, b.Lng, a.Lat, a.Lng))
			assert.GreaterOrEqual(t, DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng), 0.0)
		}
	}
}

func TestDistanceKm_MonotonicWithSeparation(t *testing.T) {
	prev := 0.0
	for lon := 1.0; lon <= 180; lon += 1 {
		d := DistanceKm(0, 0, 0, lon)
		assert.Greater(t, d, prev)
		prev = d
	}
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "6.0 km away", FormatDistance(6.019962))
	assert.Equal(t, "0.0 km away", FormatDistance(0))
	assert.Equal(t, "12.5 km away", FormatDistance(12.452))
}

func TestRankByDistance(t *testing.T) {
	ranked := RankByDistance(model.DefaultMapCenter, registry.All())
	require.Len(t, ranked, 6)

	ids := make([]int, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	assert.Equal(t, []int{1, 5, 2, 4, 3, 6}, ids)
	assert.Equal(t, "2.2 km away", ranked[0].DistanceText)

	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].DistanceKm, ranked[i].DistanceKm)
	}
}

func TestRankByDistance_StableOnTies(t *testing.T) {
	same := []model.RecyclingCenter{
		{ID: 10, Latitude: 1, Longitude: 1},
		{ID: 11, Latitude: 1, Longitude: 1},
		{ID: 12, Latitude: 1, Longitude: 1},
	}
	ranked := RankByDistance(model.LatLng{}, same)
	assert.Equal(t, 10, ranked[0].ID)
	assert.Equal(t, 11, ranked[1].ID)
	assert.Equal(t, 12, ranked[2].ID)
}

func TestFindNearest(t *testing.T) {
	assert.Nil(t, FindNearest(model.LatLng{}, nil))

	nearest := FindNearest(model.LatLng{Lat: 19.19, Lng: 72.85}, registry.All())
	require.NotNil(t, nearest)
	assert.Equal(t, 6, nearest.ID)
}
