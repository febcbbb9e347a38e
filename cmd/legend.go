package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/partner-map/internal/choropleth"
)

var legendFormat string

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the colour legend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeLegend(cmd.OutOrStdout(), legendFormat)
	},
}

func init() {
	legendCmd.Flags().StringVar(&legendFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(legendCmd)
}

func writeLegend(out io.Writer, format string) error {
	entries := choropleth.Legend()

	switch format {
	case "json":
		data, err := json.MarshalIndent(map[string]any{
			"title":   choropleth.LegendTitle,
			"entries": entries,
		}, "", "  ")
		if err != nil {
			return eris.Wrap(err, "legend: encode json")
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "text":
		fmt.Fprintln(out, choropleth.LegendTitle)
		for _, e := range entries {
			fmt.Fprintf(out, "  %-8s %-12s\n", e.Color, e.Label)
		}
		return nil
	default:
		return eris.Errorf("legend: unknown format %q", format)
	}
}
