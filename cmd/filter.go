package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/partner-map/internal/catalog"
	"github.com/sells-group/partner-map/internal/choropleth"
	"github.com/sells-group/partner-map/internal/dataset"
)

type filterOptions struct {
	Source      string
	Partner     string
	Format      string
	MatchesOnly bool
}

var filterOpts filterOptions

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Print county styles for a partner selection",
	Long:  "Runs the partner filter over the county dataset and prints each county's style. Without --partner every county gets its default style.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := filterOpts
		if opts.Source == "" {
			opts.Source = cfg.Data.Source
		}
		cfg.Data.Source = opts.Source
		if err := cfg.Validate("filter"); err != nil {
			return err
		}

		cat, err := catalog.Load(cfg.Partners.CatalogPath)
		if err != nil {
			return err
		}
		if opts.Partner != "" && !cat.Contains(opts.Partner) {
			zap.L().Warn("partner is not in the catalog", zap.String("partner", opts.Partner))
		}

		return runFilter(ctx, cmd.OutOrStdout(), opts)
	},
}

func init() {
	filterCmd.Flags().StringVar(&filterOpts.Source, "source", "", "county dataset (default from config)")
	filterCmd.Flags().StringVar(&filterOpts.Partner, "partner", "", "partner to highlight")
	filterCmd.Flags().StringVar(&filterOpts.Format, "format", "table", "output format: table or json")
	filterCmd.Flags().BoolVar(&filterOpts.MatchesOnly, "matches-only", false, "only print highlighted counties")
	rootCmd.AddCommand(filterCmd)
}

// filterResult is the JSON form of a filter run.
type filterResult struct {
	Selection string                 `json:"selection"`
	Matched   []choropleth.FeatureID `json:"matched"`
	Styles    choropleth.Styles      `json:"styles"`
}

func runFilter(ctx context.Context, out io.Writer, opts filterOptions) error {
	ds, err := dataset.Load(ctx, opts.Source)
	if err != nil {
		return err
	}

	features := ds.Features()
	styles := choropleth.ApplyFilter(features, opts.Partner)
	matched := choropleth.Matches(features, opts.Partner)
	if matched == nil {
		matched = []choropleth.FeatureID{}
	}

	if opts.MatchesOnly {
		keep := make(choropleth.Styles, len(matched))
		for _, id := range matched {
			keep[id] = styles[id]
		}
		styles = keep
	}

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(filterResult{
			Selection: string(choropleth.Normalize(opts.Partner)),
			Matched:   matched,
			Styles:    styles,
		}); err != nil {
			return eris.Wrap(err, "filter: encode json")
		}
		return nil
	case "table":
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "COUNTY\tTOTAL\tFILL\tMATCH")
		for _, c := range ds.Counties {
			style, ok := styles[c.ID]
			if !ok {
				continue
			}
			match := ""
			if style.IsHighlight() {
				match = "*"
			}
			fmt.Fprintf(tw, "%s\t%g\t%s\t%s\n", c.Name, c.TotalPartners, style.FillColor, match)
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "filter: write table")
		}
		fmt.Fprintf(out, "\n%d of %d counties matched\n", len(matched), ds.Len())
		return nil
	default:
		return eris.Errorf("filter: unknown format %q", opts.Format)
	}
}
