package mapview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Basemap is an upstream raster tile source offered in the layer switcher.
type Basemap struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	BaseURL     string `json:"-"`
	Attribution string `json:"attribution"`
}

// maxTileZoom is the deepest zoom level the proxy forwards upstream.
const maxTileZoom = 22

// ErrUnknownBasemap is returned for a basemap name the proxy does not serve.
var ErrUnknownBasemap = eris.New("mapview: unknown basemap")

// TileProxy fetches basemap tiles from their upstream servers, caching them
// and holding all upstream traffic to one shared rate.
type TileProxy struct {
	basemaps  map[string]Basemap
	format    string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	cache     *TileCache
}

// NewTileProxy creates a proxy for the given basemaps. cache may be nil.
func NewTileProxy(basemaps []Basemap, format, userAgent string, limiter *rate.Limiter, cache *TileCache) *TileProxy {
	byName := make(map[string]Basemap, len(basemaps))
	for _, b := range basemaps {
		byName[b.Name] = b
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &TileProxy{
		basemaps:  byName,
		format:    format,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 30 * time.Second},
		limiter:   limiter,
		cache:     cache,
	}
}

// Fetch returns a tile and its content type from cache or upstream.
func (p *TileProxy) Fetch(ctx context.Context, name string, z, x, y int) ([]byte, string, error) {
	bm, ok := p.basemaps[name]
	if !ok {
		return nil, "", ErrUnknownBasemap
	}

	if p.cache != nil {
		if data, ct, hit := p.cache.Get(name, z, x, y); hit {
			return data, ct, nil
		}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, "", eris.Wrap(err, "mapview: basemap rate limit")
	}

	url := fmt.Sprintf("%s/%d/%d/%d.%s", bm.BaseURL, z, x, y, p.format)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", eris.Wrap(err, "mapview: create basemap request")
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", eris.Wrap(err, "mapview: fetch basemap tile")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", eris.Errorf("mapview: basemap upstream returned %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", eris.Wrap(err, "mapview: read basemap tile")
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = contentTypeFor(p.format)
	}
	if p.cache != nil {
		p.cache.Put(name, z, x, y, data, ct)
	}

	zap.L().Debug("mapview: fetched basemap tile", zap.String("url", url), zap.Int("bytes", len(data)))
	return data, ct, nil
}

func contentTypeFor(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// ServeHTTP serves /basemap/{name}/{z}/{x}/{tile} where tile is "{y}.{ext}".
func (p *TileProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var z, x, y int
	var ext string
	if _, err := fmt.Sscanf(chi.URLParam(r, "z")+"/"+chi.URLParam(r, "x")+"/"+chi.URLParam(r, "tile"),
		"%d/%d/%d.%s", &z, &x, &y, &ext); err != nil {
		http.Error(w, "invalid tile path", http.StatusBadRequest)
		return
	}
	if z < 0 || z > maxTileZoom || x < 0 || y < 0 || x >= 1<<z || y >= 1<<z {
		http.Error(w, "tile out of range", http.StatusBadRequest)
		return
	}

	data, ct, err := p.Fetch(r.Context(), name, z, x, y)
	if err != nil {
		if eris.Is(err, ErrUnknownBasemap) {
			http.Error(w, "unknown basemap", http.StatusNotFound)
			return
		}
		zap.L().Error("mapview: basemap tile fetch failed",
			zap.String("basemap", name),
			zap.Int("z", z), zap.Int("x", x), zap.Int("y", y),
			zap.Error(err),
		)
		http.Error(w, "upstream fetch failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}
