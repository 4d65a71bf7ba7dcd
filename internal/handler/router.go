package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers ルーターに登録するハンドラー一式
type Handlers struct {
	Centers     *CentersHandler
	Maps        *MapHandler
	Suggestions *SuggestionsHandler
}

// NewRouter はGinルーターをセットアップする
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "EWaste-App"})
		})

		api.GET("/centers", h.Centers.ListCenters)
		api.GET("/centers/geojson", h.Centers.GetCentersGeoJSON)
		api.GET("/distance", h.Centers.GetDistance)
		api.GET("/map/tiles", h.Centers.GetTileLayer)

		maps := api.Group("/maps")
		{
			maps.POST("", h.Maps.CreateMap)
			maps.GET("/:id", h.Maps.GetMap)
			maps.DELETE("/:id", h.Maps.DeleteMap)
			maps.POST("/:id/locate", h.Maps.LocateUser)
			maps.POST("/:id/search", h.Maps.SearchLocation)
		}

		api.POST("/suggestions", h.Suggestions.PostSuggestion)
		api.GET("/suggestions", h.Suggestions.ListSuggestions)
	}

	return r
}
