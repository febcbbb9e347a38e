package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/partner-map/internal/catalog"
)

var partnersCmd = &cobra.Command{
	Use:   "partners",
	Short: "List the partners offered in the map dropdown",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := catalog.Load(cfg.Partners.CatalogPath)
		if err != nil {
			return err
		}
		return writePartners(cmd.OutOrStdout(), cat)
	},
}

func init() {
	rootCmd.AddCommand(partnersCmd)
}

func writePartners(out io.Writer, cat *catalog.Catalog) error {
	for _, p := range cat.Partners {
		if _, err := fmt.Fprintln(out, p); err != nil {
			return err
		}
	}
	return nil
}
