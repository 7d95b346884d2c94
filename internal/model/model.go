// Package model holds the shared types passed between analysis phases.
package model

import (
	"time"
)

// AnalysisRequest describes a single plantation analysis invocation.
type AnalysisRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// RadiusM is the half-width of the square analysis region in meters.
	RadiusM float64 `json:"radius_m,omitempty"`

	// ImagePath optionally points at a PNG/JPG raster to classify instead of
	// sampling demo values.
	ImagePath string `json:"image_path,omitempty"`

	// Points is the target number of plantation points (50-200).
	Points int `json:"points,omitempty"`

	// MinSpacingM is the minimum distance enforced between selected points.
	MinSpacingM float64 `json:"min_spacing_m,omitempty"`

	// Threshold is the minimum suitability score for candidate cells.
	Threshold float64 `json:"threshold,omitempty"`

	// Seed makes demo-mode sampling reproducible. Zero means time-derived.
	Seed uint64 `json:"seed,omitempty"`
}

// PlantationPoint is a selected grid cell promoted to a geographic coordinate.
// Points are never mutated after selection.
type PlantationPoint struct {
	ID        int      `json:"id"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Score     float64  `json:"score"`
	Species   []string `json:"species"`

	// Environmental factors of the originating cell, kept for traceability.
	NDVI  float64 `json:"ndvi"`
	Water float64 `json:"water"`
	Soil  float64 `json:"soil"`
}

// EnvSummary holds region-wide mean environmental factors.
type EnvSummary struct {
	NDVI  float64 `json:"ndvi"`
	Water float64 `json:"water"`
	Soil  float64 `json:"soil"`
}

// ScoreSummary aggregates suitability scores over the selected points.
type ScoreSummary struct {
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	StdDev         float64 `json:"std_dev"`
	Interpretation string  `json:"interpretation"`
}

// AnalysisResult is the complete output of one analysis run.
type AnalysisResult struct {
	Points     []PlantationPoint `json:"points"`
	Env        EnvSummary        `json:"env"`
	Scores     ScoreSummary      `json:"scores"`
	Source     string            `json:"source"`
	Confidence float64           `json:"confidence,omitempty"`

	// Warning carries non-fatal conditions (remote fallback, empty candidate
	// set) that should be surfaced to the user.
	Warning string `json:"warning,omitempty"`

	// Fallback reports that a remote analysis degraded to local estimation.
	Fallback bool `json:"fallback,omitempty"`
}

// RunStatus tracks the lifecycle of a recorded analysis run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is a recorded analysis invocation with its request and result.
type Run struct {
	ID        string          `json:"id"`
	Request   AnalysisRequest `json:"request"`
	Status    RunStatus       `json:"status"`
	Result    *AnalysisResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
