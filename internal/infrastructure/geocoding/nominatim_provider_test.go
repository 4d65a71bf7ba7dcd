package geocoding

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EWaste-App/internal/domain/model"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestProvider(t *testing.T, fn roundTripFunc) *NominatimProvider {
	t.Helper()
	return NewNominatimProvider(NominatimConfig{
		BaseURL:    "https://nominatim.test/search",
		UserAgent:  "ewaste-test/1.0",
		HTTPClient: &http.Client{Transport: fn},
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestSearch_ParsesFirstResult(t *testing.T) {
	provider := newTestProvider(t, func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		assert.Equal(t, "Andheri East", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "ewaste-test/1.0", req.Header.Get("User-Agent"))
		assert.Equal(t, "nominatim.test", req.URL.Host)
		return jsonResponse(http.StatusOK, `[{"lat":"19.1136","lon":"72.8697","display_name":"Andheri East, Mumbai, India"}]`), nil
	})

	result, err := provider.Search(context.Background(), "Andheri East")
	require.NoError(t, err)
	assert.InDelta(t, 19.1136, result.Location.Lat, 1e-9)
	assert.InDelta(t, 72.8697, result.Location.Lng, 1e-9)
	assert.Equal(t, "Andheri East, Mumbai, India", result.DisplayName)
}

func TestSearch_AcceptsNumericCoordinates(t *testing.T) {
	provider := newTestProvider(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `[{"lat":18.52,"lon":73.85,"display_name":"Pune"}]`), nil
	})

	result, err := provider.Search(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Equal(t, model.LatLng{Lat: 18.52, Lng: 73.85}, result.Location)
}

func TestSearch_EmptyResultIsNotFound(t *testing.T) {
	provider := newTestProvider(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	_, err := provider.Search(context.Background(), "zzzz")
	assert.ErrorIs(t, err, model.ErrLocationNotFound)
	assert.NotErrorIs(t, err, model.ErrSearchTransport)
}

func TestSearch_TransportErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   roundTripFunc
	}{
		{"通信エラー", func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}},
		{"HTTP 500", func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusInternalServerError, `oops`), nil
		}},
		{"不正なJSON", func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{not json`), nil
		}},
		{"不正な座標", func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `[{"lat":"abc","lon":"72.8","display_name":"x"}]`), nil
		}},
		{"NaNの座標", func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `[{"lat":"NaN","lon":"Inf","display_name":"x"}]`), nil
		}},
		{"範囲外の座標", func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `[{"lat":"999","lon":"72.8","display_name":"x"}]`), nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestProvider(t, tt.fn).Search(context.Background(), "Mumbai")
			assert.ErrorIs(t, err, model.ErrSearchTransport)
			assert.NotErrorIs(t, err, model.ErrLocationNotFound)
		})
	}
}

func TestSearch_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	provider := newTestProvider(t, func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("connection refused")
	})

	for i := 0; i < 5; i++ {
		_, err := provider.Search(context.Background(), "Mumbai")
		require.ErrorIs(t, err, model.ErrSearchTransport)
	}
	require.Equal(t, int32(5), calls.Load())

	_, err := provider.Search(context.Background(), "Mumbai")
	assert.ErrorIs(t, err, model.ErrSearchTransport)
	assert.Equal(t, int32(5), calls.Load(), "ブレーカーが開いている間はAPIを呼ばない")
}

func TestSearch_NotFoundDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	provider := newTestProvider(t, func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	for i := 0; i < 8; i++ {
		_, err := provider.Search(context.Background(), "nowhere")
		require.ErrorIs(t, err, model.ErrLocationNotFound)
	}
	assert.Equal(t, int32(8), calls.Load())
}

func TestSearch_CanceledContext(t *testing.T) {
	provider := NewNominatimProvider(NominatimConfig{
		RequestsPerSecond: 0.001,
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `[]`), nil
		})},
	})

	// 最初のトークンを消費する
	_, _ = provider.Search(context.Background(), "first")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := provider.Search(ctx, "second")
	assert.ErrorIs(t, err, model.ErrSearchTransport)
}

func TestNewNominatimProvider_Defaults(t *testing.T) {
	provider := NewNominatimProvider(NominatimConfig{})
	assert.Equal(t, DefaultNominatimURL, provider.baseURL)
	assert.Equal(t, DefaultUserAgent, provider.userAgent)
	assert.Contains(t, provider.buildURL("Powai, Mumbai"), "q=Powai%2C+Mumbai")
}
