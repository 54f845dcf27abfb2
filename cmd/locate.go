package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landserv/survey-cli/internal/input"
	"github.com/landserv/survey-cli/internal/store"
	"github.com/landserv/survey-cli/internal/survey"
)

var locateCmd = &cobra.Command{
	Use:   "locate [easting] [northing]",
	Short: "Locate projected coordinates within the boundary dataset",
	Long:  "Reprojects one coordinate pair (or a CSV/XLSX file of pairs via --input) to WGS84 and reports the containing region.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		epsg, _ := cmd.Flags().GetInt("epsg")
		inputPath, _ := cmd.Flags().GetString("input")
		save, _ := cmd.Flags().GetBool("store")

		svc, err := initService(epsg)
		if err != nil {
			return err
		}

		if inputPath != "" {
			points, err := input.ReadPoints(inputPath)
			if err != nil {
				return err
			}

			results, err := svc.LocateBatch(ctx, points, cfg.Survey.BatchConcurrency)
			if err != nil {
				return eris.Wrap(err, "locate batch")
			}

			zap.L().Info("batch located",
				zap.Int("points", len(results)),
				zap.Int("matched", matchedCount(results)),
			)

			if save {
				recordRun(ctx, store.KindLocate, points, results)
			}
			return printJSON(results)
		}

		if len(args) != 2 {
			return eris.New("pass an easting and a northing, or --input <file>")
		}

		easting, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return eris.Errorf("invalid easting %q", args[0])
		}
		northing, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return eris.Errorf("invalid northing %q", args[1])
		}

		res, err := svc.Locate(easting, northing)
		if err != nil {
			return eris.Wrap(err, "locate")
		}

		if save {
			recordRun(ctx, store.KindLocate, map[string]float64{
				"easting":  easting,
				"northing": northing,
			}, res)
		}
		return printJSON(res)
	},
}

func matchedCount(results []*survey.LocationResult) int {
	n := 0
	for _, r := range results {
		if r.Matched {
			n++
		}
	}
	return n
}

func init() {
	locateCmd.Flags().Int("epsg", 0, "EPSG code of the input coordinates (default from config)")
	locateCmd.Flags().String("input", "", "CSV or XLSX file of easting,northing pairs")
	locateCmd.Flags().Bool("store", false, "record the request in run history")
	rootCmd.AddCommand(locateCmd)
}
