package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/landserv/survey-cli/internal/boundary"
)

// regionRow is the listing shape shared by all output formats.
type regionRow struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Polygons int    `json:"polygons" yaml:"polygons"`
	Fields   int    `json:"fields" yaml:"fields"`
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regions in the boundary dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")

		index, err := boundary.Load(cfg.Dataset.Path)
		if err != nil {
			return err
		}

		rows := make([]regionRow, 0, index.Len())
		for _, r := range index.Regions() {
			rows = append(rows, regionRow{
				ID:       r.ID,
				Name:     r.DisplayName(),
				Polygons: r.Geometry.NumPolygons(),
				Fields:   len(r.Fields),
			})
		}

		switch format {
		case "table":
			formatRegionsTable(os.Stdout, rows)
			return nil
		case "json":
			return printJSON(rows)
		case "yaml":
			return yaml.NewEncoder(os.Stdout).Encode(rows)
		default:
			return eris.Errorf("unsupported format %q (use table, json or yaml)", format)
		}
	},
}

func formatRegionsTable(out io.Writer, rows []regionRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPOLYGONS\tFIELDS")
	_, _ = fmt.Fprintln(w, "--\t----\t--------\t------")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", r.ID, r.Name, r.Polygons, r.Fields)
	}
	_ = w.Flush()
}

func init() {
	regionsCmd.Flags().String("format", "table", "output format: table, json or yaml")
	rootCmd.AddCommand(regionsCmd)
}
