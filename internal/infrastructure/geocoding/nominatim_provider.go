package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"EWaste-App/internal/domain/model"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	DefaultUserAgent    = "ewaste-app/1.0"
)

// NominatimConfig はNominatimプロバイダの設定
type NominatimConfig struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0以下なら無制限
	HTTPClient        *http.Client
}

// NominatimProvider はOpenStreetMap Nominatimを使用したジオコーディングの実装
type NominatimProvider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// NewNominatimProvider は新しいプロバイダを生成する
func NewNominatimProvider(cfg NominatimConfig) *NominatimProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("⚡ サーキットブレーカー状態変更 (%s): %s -> %s", name, from, to)
		},
	})

	return &NominatimProvider{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    breaker,
	}
}

// Search はNominatimで地名を検索し、最初の1件を返す
func (p *NominatimProvider) Search(ctx context.Context, query string) (*model.GeocodeResult, error) {
	// 1. 利用ポリシーに合わせてリクエスト間隔を調整
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: レート制限の待機に失敗: %v", model.ErrSearchTransport, err)
	}

	// 2. サーキットブレーカー経由でAPIを呼び出す（0件は失敗として数えない）
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetch(ctx, query)
	})
	if err != nil {
		if errors.Is(err, model.ErrSearchTransport) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", model.ErrSearchTransport, err)
	}

	geocoded, _ := result.(*model.GeocodeResult)
	if geocoded == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrLocationNotFound, query)
	}
	return geocoded, nil
}

// fetch は1回分のAPI呼び出し。結果0件の場合は (nil, nil) を返す
func (p *NominatimProvider) fetch(ctx context.Context, query string) (*model.GeocodeResult, error) {
	reqURL := p.buildURL(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: リクエストの作成に失敗: %v", model.ErrSearchTransport, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: APIリクエストに失敗: %v", model.ErrSearchTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: APIからエラーステータスが返されました: %s", model.ErrSearchTransport, resp.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: JSONのパースに失敗: %v", model.ErrSearchTransport, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	first := results[0]
	location := model.LatLng{Lat: float64(first.Lat), Lng: float64(first.Lon)}
	if !location.IsValid() {
		return nil, fmt.Errorf("%w: 不正な座標が返されました (lat: %v, lon: %v)", model.ErrSearchTransport, location.Lat, location.Lng)
	}
	return &model.GeocodeResult{
		Location:    location,
		DisplayName: first.DisplayName,
	}, nil
}

func (p *NominatimProvider) buildURL(query string) string {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")
	return fmt.Sprintf("%s?%s", p.baseURL, params.Encode())
}

// --- Nominatim APIのレスポンスをパースするための構造体 ---

type nominatimResult struct {
	Lat         coordinate `json:"lat"`
	Lon         coordinate `json:"lon"`
	DisplayName string     `json:"display_name"`
}

// coordinate はNominatimが文字列で返す座標を数値として読み込む
type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("座標のパースに失敗 %q: %w", text, err)
		}
		*c = coordinate(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		*c = coordinate(value)
		return nil
	}

	return fmt.Errorf("座標は文字列または数値である必要があります")
}
