// Package optimizer selects a maximally spaced set of high-suitability
// plantation points from a scored grid.
package optimizer

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vanam-labs/plantation-cli/internal/envmap"
	"github.com/vanam-labs/plantation-cli/internal/model"
	"github.com/vanam-labs/plantation-cli/internal/suitability"
)

const earthRadiusM = 6371000

// Default selection parameters, matching the demo tool's sliders.
const (
	DefaultPoints      = 100
	DefaultMinSpacingM = 3.0
	DefaultThreshold   = 50.0

	MinPoints = 50
	MaxPoints = 200
)

// Config controls candidate filtering and greedy selection.
type Config struct {
	// Points is the target number of plantation points.
	Points int `yaml:"points" mapstructure:"points"`

	// MinSpacingM is the minimum distance in meters between any two selected
	// points.
	MinSpacingM float64 `yaml:"min_spacing_m" mapstructure:"min_spacing_m"`

	// Threshold is the minimum suitability score for a cell to become a
	// candidate.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
}

// DefaultConfig returns the demo defaults.
func DefaultConfig() Config {
	return Config{
		Points:      DefaultPoints,
		MinSpacingM: DefaultMinSpacingM,
		Threshold:   DefaultThreshold,
	}
}

// Validate checks the user-facing parameter ranges.
func (c Config) Validate() error {
	if c.Points < MinPoints || c.Points > MaxPoints {
		return eris.Errorf("optimizer: points must be in [%d, %d], got %d", MinPoints, MaxPoints, c.Points)
	}
	if c.MinSpacingM <= 0 {
		return eris.New("optimizer: min spacing must be positive")
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return eris.Errorf("optimizer: threshold must be in [0, 100], got %f", c.Threshold)
	}
	return nil
}

// Recommender attaches species to a selected cell's environmental factors.
type Recommender interface {
	Recommend(ndvi, water, soil float64) []string
}

type candidate struct {
	row, col int
	score    float64
}

// Select filters cells above the threshold, orders them by descending score
// (ties broken by grid scan order), and greedily accepts candidates that keep
// the minimum spacing to every already-accepted point. It returns up to
// cfg.Points points; fewer candidates than requested is not an error.
func Select(m *envmap.Map, g *suitability.Grid, cfg Config, rec Recommender) ([]model.PlantationPoint, error) {
	if m.Rows != g.Rows || m.Cols != g.Cols {
		return nil, eris.Errorf("optimizer: map %dx%d and grid %dx%d differ", m.Rows, m.Cols, g.Rows, g.Cols)
	}
	if cfg.Points <= 0 {
		return nil, eris.New("optimizer: points must be positive")
	}

	// Candidate set in row-major scan order.
	var cands []candidate
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if s := g.At(row, col); s > cfg.Threshold {
				cands = append(cands, candidate{row: row, col: col, score: s})
			}
		}
	}

	if len(cands) == 0 {
		zap.L().Info("no candidate cells above threshold",
			zap.Float64("threshold", cfg.Threshold),
		)
		return nil, nil
	}

	// Stable sort preserves scan order for equal scores: first-encountered wins.
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})

	type accepted struct {
		lat, lon float64
	}

	var points []model.PlantationPoint
	var placed []accepted

	for _, cand := range cands {
		if len(points) >= cfg.Points {
			break
		}

		lat, lon := m.Coord(cand.row, cand.col)

		tooClose := false
		for _, a := range placed {
			if HaversineM(lat, lon, a.lat, a.lon) < cfg.MinSpacingM {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		cell := m.At(cand.row, cand.col)
		points = append(points, model.PlantationPoint{
			ID:        len(points) + 1,
			Latitude:  lat,
			Longitude: lon,
			Score:     cand.score,
			Species:   rec.Recommend(cell.NDVI, cell.Water, cell.Soil),
			NDVI:      cell.NDVI,
			Water:     cell.Water,
			Soil:      cell.Soil,
		})
		placed = append(placed, accepted{lat: lat, lon: lon})
	}

	zap.L().Debug("greedy selection complete",
		zap.Int("candidates", len(cands)),
		zap.Int("selected", len(points)),
	)
	return points, nil
}

// HaversineM returns the great-circle distance between two coordinates in
// meters.
func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
