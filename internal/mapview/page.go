package mapview

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/partner-map/internal/choropleth"
)

//go:embed templates/index.html.tmpl
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html.tmpl"))

type legendRow struct {
	Label  string
	Swatch template.CSS
}

type pageData struct {
	Title       string
	CenterLat   float64
	CenterLng   float64
	Zoom        int
	MaxZoom     int
	Basemaps    []Basemap
	Partners    []string
	LegendTitle string
	Legend      []legendRow
	DataLoaded  bool
}

// DefaultBasemaps returns the two basemaps of the layer switcher, pointed at
// the given upstreams.
func DefaultBasemaps(osmURL, topoURL string) []Basemap {
	return []Basemap{
		{Name: "osm", Label: "Default Map", BaseURL: osmURL, Attribution: "&copy; OpenStreetMap contributors"},
		{Name: "topo", Label: "Satellite View", BaseURL: topoURL, Attribution: "&copy; OpenStreetMap contributors, SRTM | &copy; OpenTopoMap"},
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	legend := choropleth.Legend()
	rows := make([]legendRow, len(legend))
	for i, e := range legend {
		rows[i] = legendRow{Label: e.Label, Swatch: template.CSS("background:" + string(e.Color))}
	}

	data := pageData{
		Title:       s.mapCfg.Title,
		CenterLat:   s.mapCfg.CenterLat,
		CenterLng:   s.mapCfg.CenterLng,
		Zoom:        s.mapCfg.Zoom,
		MaxZoom:     s.mapCfg.MaxZoom,
		Basemaps:    s.basemaps,
		Partners:    s.catalog.Partners,
		LegendTitle: choropleth.LegendTitle,
		Legend:      rows,
		DataLoaded:  s.dataLoaded,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		zap.L().Error("mapview: render page", zap.Error(err))
	}
}
