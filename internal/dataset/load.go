package dataset

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Load reads a county dataset from a GeoJSON file, a shapefile, or an
// http(s) URL serving GeoJSON. The format is chosen by extension.
func Load(ctx context.Context, source string) (*Dataset, error) {
	if source == "" {
		return nil, eris.New("dataset: no source configured")
	}

	var (
		ds  *Dataset
		err error
	)
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		ds, err = fetchGeoJSON(ctx, source)
	case strings.EqualFold(filepath.Ext(source), ".shp"):
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "dataset: load")
		}
		ds, err = LoadShapefile(source)
	default:
		ds, err = LoadGeoJSON(ctx, source)
	}
	if err != nil {
		return nil, err
	}

	zap.L().Info("dataset: loaded",
		zap.String("source", source),
		zap.String("dataset_id", ds.ID.String()),
		zap.Int("counties", ds.Len()),
	)
	return ds, nil
}

// LoadGeoJSON reads a GeoJSON FeatureCollection from disk.
func LoadGeoJSON(ctx context.Context, path string) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "dataset: load")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer func() { _ = f.Close() }()

	return DecodeGeoJSON(f, path)
}

func fetchGeoJSON(ctx context.Context, url string) (*Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: create request")
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: fetch %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, eris.Errorf("dataset: %s returned %d", url, resp.StatusCode)
	}
	return DecodeGeoJSON(resp.Body, url)
}
