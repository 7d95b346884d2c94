// Package planner runs the full analysis pipeline: environmental estimation,
// suitability scoring, point selection, and summary statistics.
package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vanam-labs/plantation-cli/internal/estimator"
	"github.com/vanam-labs/plantation-cli/internal/model"
	"github.com/vanam-labs/plantation-cli/internal/optimizer"
	"github.com/vanam-labs/plantation-cli/internal/species"
	"github.com/vanam-labs/plantation-cli/internal/suitability"
)

// DefaultRadiusM is the analysis region half-width used when the request
// leaves it unset.
const DefaultRadiusM = 1000.0

// EmptyResultMessage is surfaced when no cell clears the score threshold.
const EmptyResultMessage = "no candidate cells above the suitability threshold; try lowering the threshold or choosing a different site"

// Planner wires the analysis phases together.
type Planner struct {
	est      estimator.Estimator
	weights  suitability.Weights
	jitter   float64
	table    *species.Table
	defaults optimizer.Config
}

// New creates a planner. est and table must not be nil. Zero-valued fields in
// defaults fall back to the optimizer package defaults.
func New(est estimator.Estimator, weights suitability.Weights, jitter float64, table *species.Table, defaults optimizer.Config) *Planner {
	return &Planner{est: est, weights: weights, jitter: jitter, table: table, defaults: defaults}
}

// staticRecommender returns service-provided species for every point.
type staticRecommender struct {
	species []string
}

func (s staticRecommender) Recommend(ndvi, water, soil float64) []string {
	return s.species
}

// Run executes one analysis. An empty candidate set is not an error: the
// result carries zero points and an explanatory warning.
func (p *Planner) Run(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	req = p.withDefaults(req)

	cfg := optimizer.Config{
		Points:      req.Points,
		MinSpacingM: req.MinSpacingM,
		Threshold:   req.Threshold,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.weights.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	est, err := p.est.Estimate(ctx, req)
	if err != nil {
		return nil, err
	}

	grid, err := suitability.Compute(est.Map, p.weights, suitability.Options{
		JitterAmplitude: p.jitter,
		JitterSeed:      req.Seed,
	})
	if err != nil {
		return nil, err
	}

	var rec optimizer.Recommender = p.table
	if len(est.Species) > 0 {
		rec = staticRecommender{species: est.Species}
	}

	points, err := optimizer.Select(est.Map, grid, cfg, rec)
	if err != nil {
		return nil, err
	}

	result := &model.AnalysisResult{
		Points:     points,
		Env:        envSummary(est),
		Source:     est.Source,
		Confidence: est.Confidence,
		Warning:    est.Warning,
		Fallback:   est.Fallback,
	}

	if len(points) == 0 {
		result.Warning = joinWarnings(est.Warning, EmptyResultMessage)
	}

	result.Scores, err = suitability.Summarize(points)
	if err != nil {
		return nil, err
	}

	zap.L().Info("analysis complete",
		zap.String("source", est.Source),
		zap.Int("points", len(points)),
		zap.Float64("mean_score", result.Scores.Mean),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (p *Planner) withDefaults(req model.AnalysisRequest) model.AnalysisRequest {
	d := p.defaults
	if d.Points == 0 {
		d.Points = optimizer.DefaultPoints
	}
	if d.MinSpacingM == 0 {
		d.MinSpacingM = optimizer.DefaultMinSpacingM
	}
	if d.Threshold == 0 {
		d.Threshold = optimizer.DefaultThreshold
	}

	if req.RadiusM <= 0 {
		req.RadiusM = DefaultRadiusM
	}
	if req.Points == 0 {
		req.Points = d.Points
	}
	if req.MinSpacingM == 0 {
		req.MinSpacingM = d.MinSpacingM
	}
	if req.Threshold == 0 {
		req.Threshold = d.Threshold
	}
	return req
}

func envSummary(est *estimator.Estimate) model.EnvSummary {
	if est.Env != nil {
		return *est.Env
	}
	mean := est.Map.Mean()
	return model.EnvSummary{NDVI: mean.NDVI, Water: mean.Water, Soil: mean.Soil}
}

func joinWarnings(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
