package envmap

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// SamplerParams tunes the demo-mode distributions. Each factor is drawn from
// a clipped normal: a regional base value around Mean, then per-cell values
// around that base.
type SamplerParams struct {
	NDVIMean  float64 `yaml:"ndvi_mean" mapstructure:"ndvi_mean"`
	WaterMean float64 `yaml:"water_mean" mapstructure:"water_mean"`
	SoilMean  float64 `yaml:"soil_mean" mapstructure:"soil_mean"`

	// BaseSpread is the standard deviation of the regional base draw.
	BaseSpread float64 `yaml:"base_spread" mapstructure:"base_spread"`

	// CellSpread is the standard deviation of per-cell variation around the base.
	CellSpread float64 `yaml:"cell_spread" mapstructure:"cell_spread"`
}

// DefaultSamplerParams returns distribution parameters tuned to produce
// plausible-looking vegetated terrain.
func DefaultSamplerParams() SamplerParams {
	return SamplerParams{
		NDVIMean:   0.65,
		WaterMean:  0.55,
		SoilMean:   0.65,
		BaseSpread: 0.12,
		CellSpread: 0.05,
	}
}

// Sampler generates demo-mode environmental maps by random sampling within
// realistic ranges. It has no dependency on actual geography.
type Sampler struct {
	params SamplerParams
	rng    *rand.Rand
	seed   uint64
}

// NewSampler creates a sampler. A zero seed derives one from the clock.
func NewSampler(params SamplerParams, seed uint64) *Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Sampler{
		params: params,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed:   seed,
	}
}

// Seed returns the effective seed, useful for reproducing a run.
func (s *Sampler) Seed() uint64 { return s.seed }

// Sample produces an environmental map for the region. Every cell value is
// clipped to [0,1].
func (s *Sampler) Sample(lat, lon, radiusM float64, rows, cols int) (*Map, error) {
	m, err := New(lat, lon, radiusM, rows, cols)
	if err != nil {
		return nil, err
	}

	baseNDVI := s.clipped(s.params.NDVIMean, s.params.BaseSpread)
	baseWater := s.clipped(s.params.WaterMean, s.params.BaseSpread)
	baseSoil := s.clipped(s.params.SoilMean, s.params.BaseSpread)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			m.Set(row, col, Cell{
				NDVI:  s.clipped(baseNDVI, s.params.CellSpread),
				Water: s.clipped(baseWater, s.params.CellSpread),
				Soil:  s.clipped(baseSoil, s.params.CellSpread),
			})
		}
	}

	zap.L().Debug("sampled demo environmental map",
		zap.Float64("base_ndvi", baseNDVI),
		zap.Float64("base_water", baseWater),
		zap.Float64("base_soil", baseSoil),
		zap.Uint64("seed", s.seed),
	)
	return m, nil
}

func (s *Sampler) clipped(mean, spread float64) float64 {
	return Clamp01(mean + spread*s.rng.NormFloat64())
}
