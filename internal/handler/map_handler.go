package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/infrastructure/metrics"
	"EWaste-App/internal/usecase"
)

// MapHandler 地図セッションのHTTPハンドラー
type MapHandler struct {
	mapUseCase usecase.MapUseCase
}

// NewMapHandler MapHandlerの新しいインスタンスを作成
func NewMapHandler(mapUseCase usecase.MapUseCase) *MapHandler {
	return &MapHandler{mapUseCase: mapUseCase}
}

// CreateMap POST /api/maps - 地図の初期化（同じコンテナなら既存の地図を返す）
func (h *MapHandler) CreateMap(c *gin.Context) {
	var req model.InitializeMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", "Invalid JSON format: "+err.Error())
		return
	}

	snapshot, created := h.mapUseCase.Initialize(req.Container)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, snapshot)
}

// GetMap GET /api/maps/:id
func (h *MapHandler) GetMap(c *gin.Context) {
	snapshot, err := h.mapUseCase.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// DeleteMap DELETE /api/maps/:id
func (h *MapHandler) DeleteMap(c *gin.Context) {
	if err := h.mapUseCase.Teardown(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LocateUser POST /api/maps/:id/locate - ブラウザの位置情報で地図を移動
func (h *MapHandler) LocateUser(c *gin.Context) {
	var req model.LocateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid_request", "Invalid JSON format: "+err.Error())
			return
		}
	}

	response, err := h.mapUseCase.Locate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		metrics.LocateRequests.WithLabelValues(respondError(c, err)).Inc()
		return
	}
	metrics.LocateRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusOK, response)
}

// SearchLocation POST /api/maps/:id/search - 地名検索で地図を移動
func (h *MapHandler) SearchLocation(c *gin.Context) {
	var req model.SearchLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", "Invalid JSON format: "+err.Error())
		return
	}

	response, err := h.mapUseCase.Search(c.Request.Context(), c.Param("id"), req.Query)
	if err != nil {
		metrics.GeocodeSearches.WithLabelValues(respondError(c, err)).Inc()
		return
	}
	metrics.GeocodeSearches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusOK, response)
}
