package mapview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/6/38/31.png" {
			assert.Equal(t, "partner-map-test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("tile-6-38-31"))
			return
		}
		http.Error(w, "nope", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProxy(upstreamURL string, cache *TileCache) *TileProxy {
	return NewTileProxy(DefaultBasemaps(upstreamURL, upstreamURL), "png", "partner-map-test", nil, cache)
}

func TestTileProxy_FetchCaches(t *testing.T) {
	var hits atomic.Int64
	upstream := newUpstream(t, &hits)
	proxy := newTestProxy(upstream.URL, NewTileCache(10, time.Hour))

	data, ct, err := proxy.Fetch(context.Background(), "osm", 6, 38, 31)
	require.NoError(t, err)
	assert.Equal(t, "tile-6-38-31", string(data))
	assert.Equal(t, "image/png", ct)

	_, _, err = proxy.Fetch(context.Background(), "osm", 6, 38, 31)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load(), "second fetch should be served from cache")
}

func TestTileProxy_FetchErrors(t *testing.T) {
	var hits atomic.Int64
	upstream := newUpstream(t, &hits)
	proxy := newTestProxy(upstream.URL, nil)

	_, _, err := proxy.Fetch(context.Background(), "mars", 1, 0, 0)
	assert.ErrorIs(t, err, ErrUnknownBasemap)

	_, _, err = proxy.Fetch(context.Background(), "topo", 1, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func serveProxy(proxy *TileProxy, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/basemap/{name}/{z}/{x}/{tile}", proxy)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestTileProxy_ServeHTTP(t *testing.T) {
	var hits atomic.Int64
	upstream := newUpstream(t, &hits)
	proxy := newTestProxy(upstream.URL, nil)

	w := serveProxy(proxy, "/basemap/osm/6/38/31.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "tile-6-38-31", w.Body.String())
}

func TestTileProxy_ServeHTTPErrors(t *testing.T) {
	var hits atomic.Int64
	upstream := newUpstream(t, &hits)
	proxy := newTestProxy(upstream.URL, nil)

	tests := []struct {
		path string
		code int
	}{
		{"/basemap/osm/6/38/abc", http.StatusBadRequest},
		{"/basemap/osm/1/5/0.png", http.StatusBadRequest},
		{"/basemap/osm/40/0/0.png", http.StatusBadRequest},
		{"/basemap/mars/1/0/0.png", http.StatusNotFound},
		{"/basemap/osm/1/0/0.png", http.StatusBadGateway},
	}
	for _, tt := range tests {
		w := serveProxy(proxy, tt.path)
		assert.Equal(t, tt.code, w.Code, tt.path)
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeFor("png"))
	assert.Equal(t, "image/jpeg", contentTypeFor("jpg"))
	assert.Equal(t, "image/webp", contentTypeFor("webp"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("tiff"))
}
