// Package estimator produces environmental maps for a site, either locally
// (demo sampling or image classification) or through the remote suitability
// API.
package estimator

import (
	"context"

	"github.com/vanam-labs/plantation-cli/internal/envmap"
	"github.com/vanam-labs/plantation-cli/internal/model"
)

// Sources identify how an estimate was produced.
const (
	SourceDemo   = "demo"
	SourceImage  = "image"
	SourceRemote = "remote"
)

// Default grid dimensions for the analysis region.
const (
	DefaultRows = 20
	DefaultCols = 20
)

// Estimate is the environmental picture of a site before scoring.
type Estimate struct {
	Map    *envmap.Map
	Source string

	// Species carries service-recommended species when the remote API
	// produced the estimate. Nil means species are derived locally.
	Species []string

	// Env overrides the map-derived environmental summary when set.
	Env *model.EnvSummary

	// Confidence is reported by the remote service, zero otherwise.
	Confidence float64

	// Warning carries non-fatal degradations such as a remote fallback.
	Warning string

	// Fallback is set when the remote service failed and the estimate was
	// produced locally instead.
	Fallback bool
}

// Estimator turns an analysis request into an environmental estimate.
type Estimator interface {
	Estimate(ctx context.Context, req model.AnalysisRequest) (*Estimate, error)
}
