package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/partner-map/internal/config"
)

var (
	cfg *config.Config

	catalogPath string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "partner-map",
	Short: "Kenya county partner choropleth",
	Long: `partner-map colours Kenya's counties by how many partner organisations
supply health products there, and highlights the counties a chosen partner
works in.

  serve     run the Leaflet map with its county, style and basemap endpoints
  filter    print the county styles for one partner without a browser
  legend    print the colour buckets
  partners  print the partner dropdown list
  convert   turn a county shapefile into the GeoJSON the map loads

Settings come from config.yaml and PARTNERMAP_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		applyRootFlags(c)
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		zap.L().Debug("config loaded",
			zap.String("command", cmd.Name()),
			zap.String("data_source", cfg.Data.Source),
			zap.String("catalog", cfg.Partners.CatalogPath),
		)
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "YAML partner list replacing the built-in dropdown")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

// applyRootFlags lets the persistent flags win over file and env settings.
func applyRootFlags(c *config.Config) {
	if catalogPath != "" {
		c.Partners.CatalogPath = catalogPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
