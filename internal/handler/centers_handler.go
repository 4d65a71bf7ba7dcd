package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"EWaste-App/internal/domain/helper"
	"EWaste-App/internal/domain/model"
)

var errInvalidOrigin = errors.New("lat and lng must both be valid coordinates")

// CentersHandler リサイクルセンター一覧と距離計算のHTTPハンドラー
type CentersHandler struct {
	centers []model.RecyclingCenter
}

// NewCentersHandler CentersHandlerの新しいインスタンスを作成
func NewCentersHandler(centers []model.RecyclingCenter) *CentersHandler {
	return &CentersHandler{centers: centers}
}

// ListCenters GET /api/centers - センター一覧（lat,lngがあれば近い順）
func (h *CentersHandler) ListCenters(c *gin.Context) {
	origin, ok, err := parseOptionalOrigin(c)
	if err != nil {
		respondBadRequest(c, "invalid_parameter", err.Error())
		return
	}

	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"centers": h.centers,
			"count":   len(h.centers),
		})
		return
	}

	ranked := helper.RankByDistance(origin, h.centers)
	c.JSON(http.StatusOK, gin.H{
		"origin":  origin,
		"centers": ranked,
		"count":   len(ranked),
	})
}

// GetCentersGeoJSON GET /api/centers/geojson - GeoJSON形式のセンター一覧
func (h *CentersHandler) GetCentersGeoJSON(c *gin.Context) {
	origin, ok, err := parseOptionalOrigin(c)
	if err != nil {
		respondBadRequest(c, "invalid_parameter", err.Error())
		return
	}

	var originPtr *model.LatLng
	if ok {
		originPtr = &origin
	}

	fc := helper.CentersToFeatureCollection(h.centers, originPtr)
	data, err := fc.MarshalJSON()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

// GetDistance GET /api/distance - 2点間の距離（km）
func (h *CentersHandler) GetDistance(c *gin.Context) {
	names := []string{"lat1", "lon1", "lat2", "lon2"}
	values := make([]float64, len(names))
	for i, name := range names {
		raw := c.Query(name)
		if raw == "" {
			respondBadRequest(c, "missing_parameter", name+" parameter is required")
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondBadRequest(c, "invalid_parameter", "Invalid "+name+" value")
			return
		}
		values[i] = v
	}

	from := model.LatLng{Lat: values[0], Lng: values[1]}
	to := model.LatLng{Lat: values[2], Lng: values[3]}
	if !from.IsValid() || !to.IsValid() {
		respondBadRequest(c, "invalid_parameter", "Coordinates must be finite and within lat [-90, 90], lon [-180, 180]")
		return
	}

	km := helper.HaversineDistance(from, to)
	c.JSON(http.StatusOK, gin.H{
		"distance_km":   km,
		"distance_text": helper.FormatDistance(km),
	})
}

// GetTileLayer GET /api/map/tiles - タイルURLと帰属表示
func (h *CentersHandler) GetTileLayer(c *gin.Context) {
	c.JSON(http.StatusOK, model.DefaultTileLayer())
}

// parseOptionalOrigin lat,lngの両方があれば基準点として返す
func parseOptionalOrigin(c *gin.Context) (model.LatLng, bool, error) {
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw == "" && lngRaw == "" {
		return model.LatLng{}, false, nil
	}
	if latRaw == "" || lngRaw == "" {
		return model.LatLng{}, false, errInvalidOrigin
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return model.LatLng{}, false, errInvalidOrigin
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return model.LatLng{}, false, errInvalidOrigin
	}

	origin := model.LatLng{Lat: lat, Lng: lng}
	if !origin.IsValid() {
		return model.LatLng{}, false, errInvalidOrigin
	}
	return origin, true, nil
}
