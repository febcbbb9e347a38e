package mapview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/partner-map/internal/catalog"
	"github.com/sells-group/partner-map/internal/choropleth"
	"github.com/sells-group/partner-map/internal/config"
	"github.com/sells-group/partner-map/internal/dataset"
)

// Options wires a Server. A nil Dataset means the load failed: the page still
// renders with basemaps and the partner list, but no counties.
type Options struct {
	Dataset     *dataset.Dataset
	Catalog     *catalog.Catalog
	Map         config.MapConfig
	Basemaps    []Basemap
	Proxy       *TileProxy
	Cache       *TileCache
	CORSOrigins []string
}

// Server is the HTTP shell around the choropleth: it serves the map page and
// applies partner filters to the loaded counties on request.
type Server struct {
	data       *dataset.Dataset
	dataLoaded bool
	catalog    *catalog.Catalog
	mapCfg     config.MapConfig
	basemaps   []Basemap
	proxy      *TileProxy
	cache      *TileCache
	origins    []string
}

// NewServer creates a Server from opts.
func NewServer(opts Options) *Server {
	s := &Server{
		data:       opts.Dataset,
		dataLoaded: opts.Dataset != nil,
		catalog:    opts.Catalog,
		mapCfg:     opts.Map,
		basemaps:   opts.Basemaps,
		proxy:      opts.Proxy,
		cache:      opts.Cache,
		origins:    opts.CORSOrigins,
	}
	if s.data == nil {
		s.data = dataset.Empty()
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	return s
}

// Router builds the chi router for all map routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "If-None-Match"},
			ExposedHeaders: []string{"ETag", "X-Matched-Count"},
			MaxAge:         300,
		}))
	}

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/counties", s.handleCounties)
		r.Get("/styles", s.handleStyles)
		r.Get("/partners", s.handlePartners)
		r.Get("/legend", s.handleLegend)
		r.Get("/basemaps/stats", s.handleCacheStats)
	})

	if s.proxy != nil {
		r.Method(http.MethodGet, "/basemap/{name}/{z}/{x}/{tile}", s.proxy)
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"data_loaded": s.dataLoaded,
		"counties":    s.data.Len(),
		"dataset_id":  s.data.ID.String(),
	})
}

// stylesResponse is the body of /api/styles.
type stylesResponse struct {
	DatasetID string                 `json:"dataset_id"`
	Selection string                 `json:"selection"`
	Matched   []choropleth.FeatureID `json:"matched"`
	Styles    choropleth.Styles      `json:"styles"`
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	selection := r.URL.Query().Get("partner")
	features := s.data.Features()

	matched := choropleth.Matches(features, selection)
	if matched == nil {
		matched = []choropleth.FeatureID{}
	}

	w.Header().Set("X-Matched-Count", fmt.Sprint(len(matched)))
	writeJSON(w, http.StatusOK, stylesResponse{
		DatasetID: s.data.ID.String(),
		Selection: string(choropleth.Normalize(selection)),
		Matched:   matched,
		Styles:    choropleth.ApplyFilter(features, selection),
	})
}

func (s *Server) handleCounties(w http.ResponseWriter, r *http.Request) {
	selection := r.URL.Query().Get("partner")

	etag := countiesETag(s.data.ID, selection)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	styles := choropleth.ApplyFilter(s.data.Features(), selection)
	fc := s.data.FeatureCollection()
	matched := 0
	for i, f := range fc.Features {
		c := s.data.Counties[i]
		style := styles[c.ID]
		if style.IsHighlight() {
			matched++
		}
		f.Properties["style"] = style
		f.Properties["popup"] = PopupHTML(c)
		f.Properties["label"] = LabelText(c)
		if c.Label != nil {
			f.Properties["labelAnchor"] = c.Label
		}
	}

	data, err := json.Marshal(fc)
	if err != nil {
		zap.L().Error("mapview: encode counties", zap.Error(err))
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("X-Matched-Count", fmt.Sprint(matched))
	_, _ = w.Write(data)
}

// countiesETag derives a quoted entity tag from the dataset load and the
// normalized selection. The selection is hashed so any query text is safe.
func countiesETag(datasetID uuid.UUID, selection string) string {
	return strconv.Quote(uuid.NewSHA1(datasetID, []byte(choropleth.Normalize(selection))).String())
}

func (s *Server) handlePartners(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"title":   choropleth.LegendTitle,
		"entries": choropleth.Legend(),
	})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	if s.cache == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	writeJSON(w, http.StatusOK, s.cache.Stats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("mapview: write response", zap.Error(err))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
