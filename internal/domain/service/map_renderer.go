package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/domain/repository"
)

// MapRenderer は地図セッション（マーカー・ポップアップ・表示位置）を管理するサービス
type MapRenderer interface {
	// Initialize はコンテナに対応する地図を作成する。既に存在する場合は既存のハンドルを返す（created=false）
	Initialize(container string) (handle *MapHandle, created bool)

	// Lookup は地図IDからハンドルを取得する
	Lookup(mapID string) (*MapHandle, error)

	// Teardown は地図のリソースを解放する
	Teardown(handle *MapHandle) error

	// LocateUser は端末の現在地を取得して地図を移動する
	LocateUser(ctx context.Context, handle *MapHandle, provider PositionProvider) (model.LatLng, error)

	// SearchLocation は地名を検索して地図を移動する
	SearchLocation(ctx context.Context, handle *MapHandle, query string) (*model.GeocodeResult, error)

	// ActiveSessions は現在保持している地図の数
	ActiveSessions() int
}

// MapHandle は1つの地図コンテナの状態を保持するハンドル
type MapHandle struct {
	id        string
	container string
	centers   []model.RecyclingCenter

	mu           sync.Mutex
	view         model.MapView
	markers      []model.Marker
	userLocation *model.LatLng
	userMarker   *model.Marker
	searching    bool
	released     bool
}

// ID 地図ID
func (h *MapHandle) ID() string {
	return h.id
}

// Container 地図を描画するコンテナ名
func (h *MapHandle) Container() string {
	return h.container
}

// Snapshot は現在の状態のコピーを返す
func (h *MapHandle) Snapshot() model.MapSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	snapshot := model.MapSnapshot{
		MapID:     h.id,
		Container: h.container,
		View:      h.view,
		TileLayer: model.DefaultTileLayer(),
		Markers:   make([]model.Marker, len(h.markers)),
		Searching: h.searching,
	}
	copy(snapshot.Markers, h.markers)

	if h.userLocation != nil {
		loc := *h.userLocation
		snapshot.UserLocation = &loc
	}
	if h.userMarker != nil {
		marker := *h.userMarker
		snapshot.UserMarker = &marker
	}
	return snapshot
}

// mapRendererImpl MapRendererの実装
type mapRendererImpl struct {
	centers  []model.RecyclingCenter
	geocoder repository.GeocodingRepository

	mu          sync.Mutex
	byID        map[string]*MapHandle
	byContainer map[string]*MapHandle
}

// NewMapRenderer は新しいMapRendererインスタンスを作成
func NewMapRenderer(centers []model.RecyclingCenter, geocoder repository.GeocodingRepository) MapRenderer {
	return &mapRendererImpl{
		centers:     centers,
		geocoder:    geocoder,
		byID:        make(map[string]*MapHandle),
		byContainer: make(map[string]*MapHandle),
	}
}

// Initialize はデフォルト位置（ムンバイ）を中心に地図を作成し、センターごとにマーカーを配置する
func (r *mapRendererImpl) Initialize(container string) (*MapHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byContainer[container]; ok {
		return existing, false
	}

	handle := &MapHandle{
		id:        uuid.New().String(),
		container: container,
		centers:   r.centers,
		view:      model.MapView{Center: model.DefaultMapCenter, Zoom: model.DefaultZoom},
		markers:   buildCenterMarkers(r.centers, nil),
	}
	r.byID[handle.id] = handle
	r.byContainer[container] = handle

	log.Printf("🗺️ 地図を初期化 (container: %s, id: %s, markers: %d)", container, handle.id, len(handle.markers))
	return handle, true
}

// Lookup は地図IDからハンドルを取得する
func (r *mapRendererImpl) Lookup(mapID string) (*MapHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle, ok := r.byID[mapID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrMapNotInitialized, mapID)
	}
	return handle, nil
}

// Teardown は地図を破棄し、マーカーと現在地を解放する
func (r *mapRendererImpl) Teardown(handle *MapHandle) error {
	if handle == nil {
		return model.ErrMapNotInitialized
	}

	r.mu.Lock()
	if current, ok := r.byID[handle.id]; !ok || current != handle {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", model.ErrMapNotInitialized, handle.id)
	}
	delete(r.byID, handle.id)
	delete(r.byContainer, handle.container)
	r.mu.Unlock()

	handle.mu.Lock()
	handle.released = true
	handle.markers = nil
	handle.userMarker = nil
	handle.userLocation = nil
	handle.searching = false
	handle.mu.Unlock()

	log.Printf("🧹 地図を破棄 (container: %s, id: %s)", handle.container, handle.id)
	return nil
}

// LocateUser は端末の位置を1回取得し、成功時のみ表示位置・現在地マーカー・ポップアップ距離を更新する
func (r *mapRendererImpl) LocateUser(ctx context.Context, handle *MapHandle, provider PositionProvider) (model.LatLng, error) {
	if err := checkAlive(handle); err != nil {
		return model.LatLng{}, err
	}
	if provider == nil {
		return model.LatLng{}, model.ErrUnsupportedCapability
	}

	position, err := provider.CurrentPosition(ctx)
	if err != nil {
		log.Printf("⚠️ 現在地の取得に失敗 (id: %s): %v", handle.id, err)
		if !errors.Is(err, model.ErrUnsupportedCapability) && !errors.Is(err, model.ErrPositionUnavailable) {
			err = fmt.Errorf("%w: %v", model.ErrPositionUnavailable, err)
		}
		return model.LatLng{}, err
	}

	handle.mu.Lock()
	defer handle.mu.Unlock()
	if handle.released {
		return model.LatLng{}, fmt.Errorf("%w: %s", model.ErrMapNotInitialized, handle.id)
	}

	loc := position
	handle.userLocation = &loc
	handle.view = model.MapView{Center: position, Zoom: model.LocateZoom}
	handle.userMarker = &model.Marker{
		ID:       "user-location",
		Kind:     model.MarkerKindUser,
		Position: position,
		Popup:    BuildUserPopup(),
	}
	handle.markers = buildCenterMarkers(handle.centers, handle.userLocation)

	log.Printf("📍 現在地を設定 (id: %s, lat: %.4f, lng: %.4f)", handle.id, position.Lat, position.Lng)
	return position, nil
}

// SearchLocation は地名をジオコーディングし、最初の結果に地図を移動する
// 同じ地図で検索中の場合は重複送信として拒否する
func (r *mapRendererImpl) SearchLocation(ctx context.Context, handle *MapHandle, query string) (*model.GeocodeResult, error) {
	if handle == nil {
		return nil, model.ErrMapNotInitialized
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.ErrEmptyQuery
	}

	handle.mu.Lock()
	if handle.released {
		handle.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", model.ErrMapNotInitialized, handle.id)
	}
	if handle.searching {
		handle.mu.Unlock()
		return nil, model.ErrSearchInProgress
	}
	handle.searching = true
	handle.mu.Unlock()

	defer func() {
		handle.mu.Lock()
		handle.searching = false
		handle.mu.Unlock()
	}()

	if r.geocoder == nil {
		return nil, fmt.Errorf("%w: ジオコーダーが設定されていません", model.ErrSearchTransport)
	}

	log.Printf("🔍 地名検索開始 (id: %s, query: %s)", handle.id, query)
	result, err := r.geocoder.Search(ctx, query)
	if err != nil {
		if !errors.Is(err, model.ErrLocationNotFound) && !errors.Is(err, model.ErrSearchTransport) {
			err = fmt.Errorf("%w: %v", model.ErrSearchTransport, err)
		}
		log.Printf("⚠️ 地名検索に失敗 (id: %s, query: %s): %v", handle.id, query, err)
		return nil, err
	}
	if result == nil {
		return nil, model.ErrLocationNotFound
	}
	if !result.Location.IsValid() {
		log.Printf("⚠️ 検索結果の座標が不正です (id: %s, query: %s): %+v", handle.id, query, result.Location)
		return nil, fmt.Errorf("%w: 不正な座標 (%v, %v)", model.ErrSearchTransport, result.Location.Lat, result.Location.Lng)
	}

	handle.mu.Lock()
	defer handle.mu.Unlock()
	if handle.released {
		return nil, fmt.Errorf("%w: %s", model.ErrMapNotInitialized, handle.id)
	}
	handle.view = model.MapView{Center: result.Location, Zoom: model.SearchZoom}

	log.Printf("✅ 地名検索完了 (id: %s): %s", handle.id, result.DisplayName)
	return result, nil
}

// ActiveSessions は現在保持している地図の数
func (r *mapRendererImpl) ActiveSessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func checkAlive(handle *MapHandle) error {
	if handle == nil {
		return model.ErrMapNotInitialized
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()
	if handle.released {
		return fmt.Errorf("%w: %s", model.ErrMapNotInitialized, handle.id)
	}
	return nil
}

// buildCenterMarkers はセンターごとのマーカーを作成する
func buildCenterMarkers(centers []model.RecyclingCenter, userLocation *model.LatLng) []model.Marker {
	markers := make([]model.Marker, 0, len(centers))
	for i := range centers {
		c := &centers[i]
		markers = append(markers, model.Marker{
			ID:       fmt.Sprintf("center-%d", c.ID),
			Kind:     model.MarkerKindCenter,
			CenterID: c.ID,
			Position: c.ToLatLng(),
			Popup:    BuildPopup(c, userLocation),
		})
	}
	return markers
}
