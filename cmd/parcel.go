package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landserv/survey-cli/internal/geometry"
	"github.com/landserv/survey-cli/internal/input"
	"github.com/landserv/survey-cli/internal/sheet"
	"github.com/landserv/survey-cli/internal/store"
	"github.com/landserv/survey-cli/internal/survey"
)

var parcelCmd = &cobra.Command{
	Use:   "parcel [easting,northing ...]",
	Short: "Compute area, perimeter and traverse for a parcel boundary",
	Long:  "Takes parcel beacon coordinates in traverse order, as easting,northing arguments or a CSV/XLSX file via --input, and computes the closed-ring area, perimeter, centroid and per-leg traverse records. --sheet writes a computation sheet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		epsg, _ := cmd.Flags().GetInt("epsg")
		inputPath, _ := cmd.Flags().GetString("input")
		sheetPath, _ := cmd.Flags().GetString("sheet")
		save, _ := cmd.Flags().GetBool("store")

		var points []geometry.Point
		switch {
		case inputPath != "":
			var err error
			points, err = input.ReadPoints(inputPath)
			if err != nil {
				return err
			}
		case len(args) > 0:
			for _, arg := range args {
				p, err := parsePoint(arg)
				if err != nil {
					return err
				}
				points = append(points, p)
			}
		default:
			return eris.New("pass easting,northing arguments or --input <file>")
		}

		svc, err := initService(epsg)
		if err != nil {
			return err
		}

		res, err := svc.Parcel(points)
		if err != nil {
			return eris.Wrap(err, "parcel")
		}

		if sheetPath != "" {
			if err := writeSheet(sheetPath, res); err != nil {
				return err
			}
			zap.L().Info("computation sheet written", zap.String("path", sheetPath))
		}

		if save {
			recordRun(ctx, store.KindParcel, points, res)
		}
		return printJSON(res)
	},
}

func writeSheet(path string, res *survey.ParcelResult) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return sheet.WriteXLSX(path, res)
	case ".csv":
		return sheet.WriteCSV(path, res)
	default:
		return eris.Errorf("unsupported sheet format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
}

func init() {
	parcelCmd.Flags().Int("epsg", 0, "EPSG code of the input coordinates (default from config)")
	parcelCmd.Flags().String("input", "", "CSV or XLSX file of easting,northing pairs")
	parcelCmd.Flags().String("sheet", "", "write a computation sheet to this path (.xlsx or .csv)")
	parcelCmd.Flags().Bool("store", false, "record the request in run history")
	rootCmd.AddCommand(parcelCmd)
}
