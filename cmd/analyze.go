package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanam-labs/plantation-cli/internal/export"
	"github.com/vanam-labs/plantation-cli/internal/model"
)

var analyzeFlags struct {
	lat       float64
	lon       float64
	radiusM   float64
	points    int
	spacingM  float64
	threshold float64
	seed      uint64
	image     string
	outDir    string
	formats   []string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a site and select plantation points",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		req := model.AnalysisRequest{
			Latitude:    analyzeFlags.lat,
			Longitude:   analyzeFlags.lon,
			RadiusM:     analyzeFlags.radiusM,
			ImagePath:   analyzeFlags.image,
			Points:      analyzeFlags.points,
			MinSpacingM: analyzeFlags.spacingM,
			Threshold:   analyzeFlags.threshold,
			Seed:        analyzeFlags.seed,
		}

		formats, err := parseFormats(analyzeFlags.formats)
		if err != nil {
			return err
		}

		run, err := env.Store.CreateRun(ctx, req)
		if err != nil {
			return err
		}

		result, err := env.Planner.Run(ctx, req)
		if err != nil {
			if failErr := env.Store.FailRun(ctx, run.ID, err.Error()); failErr != nil {
				zap.L().Warn("recording failed run", zap.Error(failErr))
			}
			return err
		}
		if err := env.Store.CompleteRun(ctx, run.ID, result); err != nil {
			zap.L().Warn("recording completed run", zap.Error(err))
		}

		printResult(cmd, run.ID, result)

		if len(result.Points) > 0 && len(formats) > 0 {
			outDir := analyzeFlags.outDir
			if outDir == "" {
				outDir = cfg.Export.Dir
			}
			base := fmt.Sprintf("plantation_%s", run.ID[:8])
			if err := export.WriteAll(outDir, base, formats, result.Points); err != nil {
				return err
			}
			cmd.Printf("Exports written to %s/%s.{%s}\n", outDir, base, strings.Join(analyzeFlags.formats, ","))
		}
		return nil
	},
}

func parseFormats(names []string) ([]export.Format, error) {
	formats := make([]export.Format, 0, len(names))
	for _, name := range names {
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func printResult(cmd *cobra.Command, runID string, result *model.AnalysisResult) {
	cmd.Printf("Run %s (%s estimation)\n", runID, result.Source)
	if result.Warning != "" {
		cmd.Printf("Warning: %s\n", result.Warning)
	}
	cmd.Printf("Environment: NDVI %.2f | Water %.2f | Soil %.2f\n",
		result.Env.NDVI, result.Env.Water, result.Env.Soil)
	cmd.Printf("Selected %d plantation points\n", len(result.Points))
	if len(result.Points) > 0 {
		cmd.Printf("Scores: mean %.1f, median %.1f, range %.1f-%.1f\n",
			result.Scores.Mean, result.Scores.Median, result.Scores.Min, result.Scores.Max)
	}
	cmd.Printf("Assessment: %s\n", result.Scores.Interpretation)
	if result.Confidence > 0 {
		cmd.Printf("Confidence: %.0f%%\n", result.Confidence*100)
	}
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeFlags.lat, "lat", 0, "site latitude (required)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.lon, "lon", 0, "site longitude (required)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.radiusM, "radius", 1000, "region half-width in meters")
	analyzeCmd.Flags().IntVar(&analyzeFlags.points, "points", 0, "target number of plantation points, 50-200 (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.spacingM, "spacing", 0, "minimum spacing between points in meters (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeFlags.threshold, "threshold", 0, "minimum suitability score, 0-100 (default from config)")
	analyzeCmd.Flags().Uint64Var(&analyzeFlags.seed, "seed", 0, "seed for reproducible demo sampling (0 = random)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.image, "image", "", "optional PNG/JPG raster of the site")
	analyzeCmd.Flags().StringVar(&analyzeFlags.outDir, "out", "", "directory for export files (default from config)")
	analyzeCmd.Flags().StringSliceVar(&analyzeFlags.formats, "format", []string{"csv", "geojson", "kml"}, "export formats (csv, geojson, kml, xlsx, shp)")
	_ = analyzeCmd.MarkFlagRequired("lat")
	_ = analyzeCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(analyzeCmd)
}
