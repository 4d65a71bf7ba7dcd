package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EWaste-App/internal/domain/model"
	"EWaste-App/internal/domain/registry"
)

// stubGeocoder はテスト用のジオコーダー
type stubGeocoder struct {
	mu      sync.Mutex
	calls   int
	result  *model.GeocodeResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (s *stubGeocoder) Search(ctx context.Context, query string) (*model.GeocodeResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

func fixedPosition(lat, lng float64) PositionProvider {
	return PositionProviderFunc(func(ctx context.Context) (model.LatLng, error) {
		return model.LatLng{Lat: lat, Lng: lng}, nil
	})
}

func failingPosition(err error) PositionProvider {
	return PositionProviderFunc(func(ctx context.Context) (model.LatLng, error) {
		return model.LatLng{}, err
	})
}

func TestInitialize_DefaultViewAndMarkers(t *testing.T) {
	renderer := NewMapRenderer(registry.All(), &stubGeocoder{})

	handle, created := renderer.Initialize("map")
	require.True(t, created)

	snap := handle.Snapshot()
	assert.Equal(t, model.DefaultMapCenter, snap.View.Center)
	assert.Equal(t, model.DefaultZoom, snap.View.Zoom)
	assert.Equal(t, model.TileURLTemplate, snap.TileLayer.URLTemplate)
	assert.Contains(t, snap.TileLayer.Attribution, "OpenStreetMap")
	require.Len(t, snap.Markers, registry.Count())
	assert.Nil(t, snap.UserLocation)
	assert.Nil(t, snap.UserMarker)

	for i, c := range registry.All() {
		m := snap.Markers[i]
		assert.Equal(t, model.MarkerKindCenter, m.Kind)
		assert.Equal(t, c.ID, m.CenterID)
		assert.Equal(t, c.ToLatLng(), m.Position)
		assert.Equal(t, c.Name, m.Popup.Title)
		assert.False(t, m.Popup.HasDistance())
		assert.NotContains(t, m.Popup.HTML, "km away")
	}
}

func TestInitialize_IsIdempotentPerContainer(t *testing.T) {
	renderer := NewMapRenderer(registry.All(), &stubGeocoder{})

	first, created := renderer.Initialize("map")
	require.True(t, created)
	second, created := renderer.Initialize("map")
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 1, renderer.ActiveSessions())

	other, created := renderer.Initialize("other")
	assert.True(t, created)
	assert.NotEqual(t, first.ID(), other.ID())
	assert.Equal(t, 2, renderer.ActiveSessions())
}

func TestTeardown_ReleasesResources(t *testing.T) {
	renderer := NewMapRenderer(registry.All(), &stubGeocoder{})
	handle, _ := renderer.Initialize("map")

	require.NoError(t, renderer.Teardown(handle))
	assert.Equal(t, 0, renderer.ActiveSessions())
	assert.Empty(t, handle.Snapshot().Markers)

	_, err := renderer.Lookup(handle.ID())
	assert.ErrorIs(t, err, model.ErrMapNotInitialized)

	_, err = renderer.LocateUser(context.Background(), handle, fixedPosition(19, 72))
	assert.ErrorIs(t, err, model.ErrMapNotInitialized)

	_, err = renderer.SearchLocation(context.Background(), handle, "Pune")
	assert.ErrorIs(t, err, model.ErrMapNotInitialized)

	assert.ErrorIs(t, renderer.Teardown(handle), model.ErrMapNotInitialized)

	// 破棄後は同じコンテナで新しく作り直せる
	again, created := renderer.Initialize("map")
	assert.True(t, created)
	assert.NotEqual(t, handle.ID(), again.ID())
}

func TestLocateUser_RecentersAndAddsDistance(t *testing.T) {
	renderer := NewMapRenderer(registry.All(), &stubGeocoder{})
	handle, _ := renderer.Initialize("map")

	pos, err := renderer.LocateUser(context.Background(), handle, fixedPosition(19.0760, 72.8777))
	require.NoError(t, err)
	assert.Equal(t, model.LatLng{Lat: 19.0760, Lng: 72.8777}, pos)

	snap := handle.Snapshot()
	assert.Equal(t, model.MapView{Center: pos, Zoom: model.LocateZoom}, snap.View)
	require.NotNil(t, snap.UserLocation)
	require.NotNil(t, snap.UserMarker)
	assert.Equal(t, model.MarkerKindUser, snap.UserMarker.Kind)
	assert.Equal(t, model.UserMarkerLabel, snap.UserMarker.Popup.Title)

	first := snap.Markers[0]
	require.True(t, first.Popup.HasDistance())
	assert.InDelta(t, 2.22, *first.Popup.DistanceKm, 0.05)
	assert.Equal(t, "2.2 km away", first.Popup.DistanceText)
	assert.Contains(t, first.Popup.HTML, "2.2 km away")
}

func TestLocateUser_ConsecutiveFixesReplaceUserMarker(t *testing.T) {
	renderer := NewMapRenderer(registry.All(), &stubGeocoder{})
	handle, _ := renderer.Initialize("map")

	_, err := renderer.LocateUser(context.Background(), handle, fixedPosition(19.0, 72.8))
	require.NoError(t, err)
	_, err = renderer.LocateUser(context.Background(), handle, fixedPosition(19.2, 72.9))
	require.NoError(t, err)

	snap := handle.Snapshot()
	assert.Equal(t, model.LatLng{Lat: 19.2, Lng: 72.9}, snap.View.Center)
	assert.Equal(t, model.LocateZoom, snap.View.Zoom)
	assert.Equal(t, model.LatLng{Lat: 19.2, Lng: 72.9}, *snap.UserLocation)
	assert.Equal(t, model.LatLng{Lat: 19.2, Lng: 72.9}, snap.UserMarker.Position)
	assert.Len(t, snap.Markers, registry.Count())
}

func TestLocateUser_FailureLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"位置情報機能なし", model.ErrUnsupportedCapability, model.ErrUnsupportedCapability},
		{"取得失敗", model.ErrPositionUnavailable, model.ErrPositionUnavailable},
		{"その他のエラー", errors.New("timeout"), model.ErrPositionUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewMapRenderer(registry.All(), &stubGeocoder{})
			handle, _ := renderer.Initialize("map")
			_, err := renderer.LocateUser(context.Background(), handle, fixedPosition(19.1, 72.9))
			require.NoError(t, err)
			before := handle.Snapshot()

			_, err = renderer.LocateUser(context.Background(), handle, failingPosition(tt.err))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, handle.Snapshot())
		})
	}
}

func TestLocateUser_NilProvider(t *testing.T) {
	renderer := NewMapRenderer(registry.All(), &stubGeocoder{})
	handle, _ := renderer.Initialize("map")

	_, err := renderer.LocateUser(context.Background(), handle, nil)
	assert.ErrorIs(t, err, model.ErrUnsupportedCapability)
}

func TestSearchLocation_Success(t *testing.T) {
	geocoder := &stubGeocoder{result: &model.GeocodeResult{
		Location:    model.LatLng{Lat: 18.5204, Lng: 73.8567},
		DisplayName: "Pune, Maharashtra, India",
	}}
	renderer := NewMapRenderer(registry.All(), geocoder)
	handle, _ := renderer.Initialize("map")

	result, err := renderer.SearchLocation(context.Background(), handle, "  Pune  ")
	require.NoError(t, err)
	assert.Equal(t, "Pune, Maharashtra, India", result.DisplayName)

	snap := handle.Snapshot()
	assert.Equal(t, model.MapView{Center: result.Location, Zoom: model.SearchZoom}, snap.View)
	assert.False(t, snap.Searching)
	assert.Len(t, snap.Markers, registry.Count())
}

func TestSearchLocation_NotFoundKeepsView(t *testing.T) {
	geocoder := &stubGeocoder{err: model.ErrLocationNotFound}
	renderer := NewMapRenderer(registry.All(), geocoder)
	handle, _ := renderer.Initialize("map")
	before := handle.Snapshot()

	_, err := renderer.SearchLocation(context.Background(), handle, "nowhere")
	assert.ErrorIs(t, err, model.ErrLocationNotFound)
	assert.Equal(t, before, handle.Snapshot())
}

func TestSearchLocation_TransportErrors(t *testing.T) {
	for _, geoErr := range []error{model.ErrSearchTransport, errors.New("connection reset")} {
		renderer := NewMapRenderer(registry.All(), &stubGeocoder{err: geoErr})
		handle, _ := renderer.Initialize("map")
		before := handle.Snapshot()

		_, err := renderer.SearchLocation(context.Background(), handle, "Pune")
		assert.ErrorIs(t, err, model.ErrSearchTransport)
		assert.Equal(t, before, handle.Snapshot())
	}

	renderer := NewMapRenderer(registry.All(), nil)
	handle, _ := renderer.Initialize("map")
	_, err := renderer.SearchLocation(context.Background(), handle, "Pune")
	assert.ErrorIs(t, err, model.ErrSearchTransport)
}

func TestSearchLocation_NonFiniteResultKeepsView(t *testing.T) {
	for _, loc := range []model.LatLng{
		{Lat: math.NaN(), Lng: 72.8},
		{Lat: 19.0, Lng: math.Inf(1)},
		{Lat: 999, Lng: 72.8},
	} {
		geocoder := &stubGeocoder{result: &model.GeocodeResult{Location: loc, DisplayName: "x"}}
		renderer := NewMapRenderer(registry.All(), geocoder)
		handle, _ := renderer.Initialize("map")
		before := handle.Snapshot()

		_, err := renderer.SearchLocation(context.Background(), handle, "x")
		assert.ErrorIs(t, err, model.ErrSearchTransport)

		after := handle.Snapshot()
		assert.Equal(t, before, after)
		_, err = json.Marshal(after)
		assert.NoError(t, err)
	}
}

func TestSearchLocation_EmptyQueryIsIgnored(t *testing.T) {
	geocoder := &stubGeocoder{}
	renderer := NewMapRenderer(registry.All(), geocoder)
	handle, _ := renderer.Initialize("map")

	_, err := renderer.SearchLocation(context.Background(), handle, "   ")
	assert.ErrorIs(t, err, model.ErrEmptyQuery)
	assert.Equal(t, 0, geocoder.calls)
}

func TestSearchLocation_RejectsDuplicateSubmission(t *testing.T) {
	geocoder := &stubGeocoder{
		result:  &model.GeocodeResult{Location: model.LatLng{Lat: 1, Lng: 2}, DisplayName: "X"},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	renderer := NewMapRenderer(registry.All(), geocoder)
	handle, _ := renderer.Initialize("map")

	done := make(chan error, 1)
	go func() {
		_, err := renderer.SearchLocation(context.Background(), handle, "first")
		done <- err
	}()

	select {
	case <-geocoder.started:
	case <-time.After(2 * time.Second):
		t.Fatal("最初の検索が開始されませんでした")
	}
	assert.True(t, handle.Snapshot().Searching)

	_, err := renderer.SearchLocation(context.Background(), handle, "second")
	assert.ErrorIs(t, err, model.ErrSearchInProgress)

	close(geocoder.release)
	require.NoError(t, <-done)
	assert.False(t, handle.Snapshot().Searching)
	assert.Equal(t, 1, geocoder.calls)
}
