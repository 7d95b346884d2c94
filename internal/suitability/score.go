// Package suitability computes per-cell plantation suitability scores from an
// environmental map.
package suitability

import (
	"math"
	"math/rand/v2"

	"github.com/rotisserie/eris"

	"github.com/vanam-labs/plantation-cli/internal/envmap"
)

// Weights holds the non-negative factor weights of the scoring formula.
// They must sum to 1.
type Weights struct {
	NDVI  float64 `yaml:"ndvi" mapstructure:"ndvi"`
	Water float64 `yaml:"water" mapstructure:"water"`
	Soil  float64 `yaml:"soil" mapstructure:"soil"`
}

// DefaultWeights emphasizes vegetation over water and soil.
func DefaultWeights() Weights {
	return Weights{NDVI: 0.4, Water: 0.3, Soil: 0.3}
}

// Validate checks that weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.NDVI < 0 || w.Water < 0 || w.Soil < 0 {
		return eris.New("suitability: weights must be non-negative")
	}
	if math.Abs(w.NDVI+w.Water+w.Soil-1.0) > 1e-6 {
		return eris.Errorf("suitability: weights must sum to 1, got %f", w.NDVI+w.Water+w.Soil)
	}
	return nil
}

// Score applies the weighted formula to a single cell, yielding a value in
// [0,100]. With valid weights the result is monotone in each factor.
func (w Weights) Score(c envmap.Cell) float64 {
	return 100 * (w.NDVI*c.NDVI + w.Water*c.Water + w.Soil*c.Soil)
}

// Grid holds a suitability score per cell, derived once from an environmental
// map and immutable afterward.
type Grid struct {
	Rows, Cols int
	scores     []float64
}

// Options tunes grid computation.
type Options struct {
	// JitterAmplitude adds uniform noise in [-j, +j] to each score to simulate
	// micro-variations, clamped back to [0,100]. Zero keeps scores exactly
	// deterministic.
	JitterAmplitude float64

	// JitterSeed seeds the noise source when JitterAmplitude is non-zero.
	JitterSeed uint64
}

// Compute derives a suitability grid from the map using the weighted formula.
func Compute(m *envmap.Map, w Weights, opts Options) (*Grid, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		Rows:   m.Rows,
		Cols:   m.Cols,
		scores: make([]float64, m.Rows*m.Cols),
	}

	var rng *rand.Rand
	if opts.JitterAmplitude > 0 {
		rng = rand.New(rand.NewPCG(opts.JitterSeed, opts.JitterSeed^0xda942042e4dd58b5))
	}

	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			score := w.Score(m.At(row, col))
			if rng != nil {
				score += (rng.Float64()*2 - 1) * opts.JitterAmplitude
			}
			g.scores[row*g.Cols+col] = math.Max(0, math.Min(100, score))
		}
	}
	return g, nil
}

// At returns the score at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.scores[row*g.Cols+col]
}

// Scores returns all scores in row-major scan order.
func (g *Grid) Scores() []float64 {
	out := make([]float64, len(g.scores))
	copy(out, g.scores)
	return out
}
