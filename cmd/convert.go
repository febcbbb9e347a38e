package main

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/partner-map/internal/dataset"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output.geojson>",
	Short: "Convert a county shapefile or GeoJSON to map input GeoJSON",
	Long:  "Reads county boundaries with COUNTY, TOTAL and ENTITIES attributes and writes the GeoJSON the map loads. Use - as output for stdout.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context(), args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(ctx context.Context, in, out string, stdout io.Writer) error {
	ds, err := dataset.Load(ctx, in)
	if err != nil {
		return err
	}

	if out == "-" {
		return ds.WriteGeoJSON(stdout)
	}

	f, err := os.Create(out)
	if err != nil {
		return eris.Wrapf(err, "convert: create %s", out)
	}
	if err := ds.WriteGeoJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "convert: close %s", out)
	}

	zap.L().Info("converted counties",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("counties", ds.Len()),
	)
	return nil
}
