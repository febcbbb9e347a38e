package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Partners PartnersConfig `yaml:"partners" mapstructure:"partners"`
	Map      MapConfig      `yaml:"map" mapstructure:"map"`
	Basemap  BasemapConfig  `yaml:"basemap" mapstructure:"basemap"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the county boundary dataset.
type DataConfig struct {
	// Source is a .geojson/.json file, a .shp shapefile, or an http(s) URL.
	Source string `yaml:"source" mapstructure:"source"`
}

// PartnersConfig configures the partner dropdown.
type PartnersConfig struct {
	// CatalogPath is an optional YAML file overriding the built-in list.
	CatalogPath string `yaml:"catalog_path" mapstructure:"catalog_path"`
}

// MapConfig sets the initial map view.
type MapConfig struct {
	Title     string  `yaml:"title" mapstructure:"title"`
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLng float64 `yaml:"center_lng" mapstructure:"center_lng"`
	Zoom      int     `yaml:"zoom" mapstructure:"zoom"`
	MaxZoom   int     `yaml:"max_zoom" mapstructure:"max_zoom"`
}

// BasemapConfig configures the proxied raster basemaps.
type BasemapConfig struct {
	OSMURL       string        `yaml:"osm_url" mapstructure:"osm_url"`
	TopoURL      string        `yaml:"topo_url" mapstructure:"topo_url"`
	Format       string        `yaml:"format" mapstructure:"format"`
	RatePerSec   float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst        int           `yaml:"burst" mapstructure:"burst"`
	CacheEntries int           `yaml:"cache_entries" mapstructure:"cache_entries"`
	CacheTTL     time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PARTNERMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.source", "counties.geojson")
	v.SetDefault("partners.catalog_path", "")
	v.SetDefault("map.title", "Kenya County Partners")
	v.SetDefault("map.center_lat", -1.286389)
	v.SetDefault("map.center_lng", 36.817223)
	v.SetDefault("map.zoom", 6)
	v.SetDefault("map.max_zoom", 19)
	v.SetDefault("basemap.osm_url", "https://tile.openstreetmap.org")
	v.SetDefault("basemap.topo_url", "https://tile.opentopomap.org")
	v.SetDefault("basemap.format", "png")
	v.SetDefault("basemap.rate_per_sec", 10.0)
	v.SetDefault("basemap.burst", 20)
	v.SetDefault("basemap.cache_entries", 5000)
	v.SetDefault("basemap.cache_ttl", time.Hour)
	v.SetDefault("basemap.user_agent", "partner-map/1.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// Validate checks the settings a command mode depends on.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Map.Zoom < 0 || c.Map.Zoom > c.Map.MaxZoom {
			problems = append(problems, "map.zoom must be between 0 and map.max_zoom")
		}
		if c.Basemap.RatePerSec <= 0 {
			problems = append(problems, "basemap.rate_per_sec must be > 0")
		}
		if c.Basemap.CacheEntries <= 0 {
			problems = append(problems, "basemap.cache_entries must be > 0")
		}
	case "filter":
		if c.Data.Source == "" {
			problems = append(problems, "data.source is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
