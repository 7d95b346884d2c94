package estimator

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vanam-labs/plantation-cli/internal/envmap"
	"github.com/vanam-labs/plantation-cli/internal/model"
	"github.com/vanam-labs/plantation-cli/pkg/tambo"
)

// Remote estimates through the Tambo API, falling back to a local estimator
// when the service is unreachable.
type Remote struct {
	client   tambo.Client
	fallback *Local
}

// NewRemote creates a remote estimator. fallback must not be nil.
func NewRemote(client tambo.Client, fallback *Local) *Remote {
	return &Remote{client: client, fallback: fallback}
}

// Estimate calls the remote API. Any remote failure degrades to the local
// estimator with a warning rather than failing the analysis.
func (r *Remote) Estimate(ctx context.Context, req model.AnalysisRequest) (*Estimate, error) {
	apiReq := tambo.AnalyzeRequest{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		RadiusM:   req.RadiusM,
	}
	if req.ImagePath != "" {
		data, err := os.ReadFile(req.ImagePath)
		if err != nil {
			zap.L().Warn("could not read image for remote analysis",
				zap.String("image", req.ImagePath), zap.Error(err))
		} else {
			apiReq.ImagePNG = data
		}
	}

	resp, err := r.client.Analyze(ctx, apiReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		zap.L().Warn("remote analysis unavailable, using local estimation", zap.Error(err))
		est, localErr := r.fallback.Estimate(ctx, req)
		if localErr != nil {
			return nil, localErr
		}
		est.Warning = "remote analysis unavailable; results were computed locally"
		est.Fallback = true
		return est, nil
	}

	m, err := mapFromGrid(resp.SuitabilityGrid, req)
	if err != nil {
		return nil, err
	}
	return &Estimate{
		Map:     m,
		Source:  SourceRemote,
		Species: resp.RecommendedSpecies,
		Env: &model.EnvSummary{
			NDVI:  resp.Environmental.NDVI,
			Water: resp.Environmental.Water,
			Soil:  resp.Environmental.Soil,
		},
		Confidence: resp.Confidence,
	}, nil
}

// mapFromGrid rebuilds an environmental map from remote per-cell scores. Each
// factor carries the normalized score so the recomputed weighted score equals
// the service's grid value.
func mapFromGrid(grid [][]float64, req model.AnalysisRequest) (*envmap.Map, error) {
	rows := len(grid)
	if rows == 0 {
		return nil, eris.New("estimator: empty remote grid")
	}
	cols := len(grid[0])

	m, err := envmap.New(req.Latitude, req.Longitude, req.RadiusM, rows, cols)
	if err != nil {
		return nil, err
	}
	for row, line := range grid {
		if len(line) != cols {
			return nil, eris.Errorf("estimator: ragged remote grid at row %d", row)
		}
		for col, score := range line {
			v := envmap.Clamp01(score / 100)
			m.Set(row, col, envmap.Cell{NDVI: v, Water: v, Soil: v})
		}
	}
	return m, nil
}
