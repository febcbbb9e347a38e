package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/partner-map/internal/catalog"
	"github.com/sells-group/partner-map/internal/config"
	"github.com/sells-group/partner-map/internal/dataset"
	"github.com/sells-group/partner-map/internal/mapview"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the map server",
	Long:  "Loads the county dataset once and serves the map page, the styled county API and proxied basemap tiles.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		cfg.Server.Port = port
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		srv, err := buildServer(ctx, cfg)
		if err != nil {
			return err
		}

		return listenAndServe(ctx, fmt.Sprintf(":%d", port), srv.Router())
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildServer wires the map server. A dataset that fails to load is logged
// and the server comes up without counties.
func buildServer(ctx context.Context, c *config.Config) (*mapview.Server, error) {
	cat, err := catalog.Load(c.Partners.CatalogPath)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.Load(ctx, c.Data.Source)
	if err != nil {
		zap.L().Error("dataset load failed, serving basemaps only",
			zap.String("source", c.Data.Source),
			zap.Error(err),
		)
		ds = nil
	}

	cache := mapview.NewTileCache(c.Basemap.CacheEntries, c.Basemap.CacheTTL)
	basemaps := mapview.DefaultBasemaps(c.Basemap.OSMURL, c.Basemap.TopoURL)
	limiter := rate.NewLimiter(rate.Limit(c.Basemap.RatePerSec), c.Basemap.Burst)

	return mapview.NewServer(mapview.Options{
		Dataset:     ds,
		Catalog:     cat,
		Map:         c.Map,
		Basemaps:    basemaps,
		Proxy:       mapview.NewTileProxy(basemaps, c.Basemap.Format, c.Basemap.UserAgent, limiter, cache),
		Cache:       cache,
		CORSOrigins: c.Server.CORSOrigins,
	}), nil
}

func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server shutdown")
		}
		return nil
	})
	return g.Wait()
}
