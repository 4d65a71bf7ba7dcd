package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 結果ラベルの値
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
	OutcomeInvalid     = "invalid"
	OutcomeBusy        = "busy"
	OutcomeUnsupported = "unsupported"
)

var (
	// GeocodeSearches 地名検索の結果別件数
	GeocodeSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ewaste",
		Name:      "geocode_searches_total",
		Help:      "Location searches by outcome.",
	}, []string{"outcome"})

	// LocateRequests 現在地取得の結果別件数
	LocateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ewaste",
		Name:      "locate_requests_total",
		Help:      "Device location fixes by outcome.",
	}, []string{"outcome"})

	// SuggestionSubmissions センター提案の結果別件数
	SuggestionSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ewaste",
		Name:      "suggestion_submissions_total",
		Help:      "Center suggestion submissions by outcome.",
	}, []string{"outcome"})

	// MapSessions 保持中の地図セッション数
	MapSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ewaste",
		Name:      "map_sessions",
		Help:      "Map sessions currently held by the renderer.",
	})
)
