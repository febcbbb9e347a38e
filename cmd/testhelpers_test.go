package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCounties = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"County": "Nairobi", "Total": 5, "Entities": "AMREF,CHAI"},
     "geometry": {"type": "Polygon", "coordinates": [[[36.6, -1.4], [37.1, -1.4], [37.1, -1.1], [36.6, -1.1], [36.6, -1.4]]]}},
    {"type": "Feature", "properties": {"County": "Kisumu", "Total": 12, "Entities": "amref, WHO"},
     "geometry": {"type": "Polygon", "coordinates": [[[34.6, -0.3], [35.1, -0.3], [35.1, 0.0], [34.6, 0.0], [34.6, -0.3]]]}},
    {"type": "Feature", "properties": {"County": "Turkana", "Total": 0},
     "geometry": {"type": "Polygon", "coordinates": [[[34.0, 2.0], [36.0, 2.0], [36.0, 5.0], [34.0, 5.0], [34.0, 2.0]]]}}
  ]
}`

func writeSampleCounties(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counties.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleCounties), 0o644))
	return path
}
