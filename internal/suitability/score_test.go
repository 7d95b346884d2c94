package suitability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanam-labs/plantation-cli/internal/envmap"
	"github.com/vanam-labs/plantation-cli/internal/model"
)

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	assert.Error(t, Weights{NDVI: -0.1, Water: 0.6, Soil: 0.5}.Validate())
	assert.Error(t, Weights{NDVI: 0.5, Water: 0.3, Soil: 0.3}.Validate())
	assert.NoError(t, Weights{NDVI: 1, Water: 0, Soil: 0}.Validate())
}

func TestWeights_Score(t *testing.T) {
	w := DefaultWeights()

	assert.InDelta(t, 0.0, w.Score(envmap.Cell{}), 1e-9)
	assert.InDelta(t, 100.0, w.Score(envmap.Cell{NDVI: 1, Water: 1, Soil: 1}), 1e-9)

	// 0.4*0.5 + 0.3*0.5 + 0.3*0.5 = 0.5 -> 50.
	assert.InDelta(t, 50.0, w.Score(envmap.Cell{NDVI: 0.5, Water: 0.5, Soil: 0.5}), 1e-9)
}

func TestWeights_ScoreMonotone(t *testing.T) {
	w := DefaultWeights()
	base := envmap.Cell{NDVI: 0.3, Water: 0.4, Soil: 0.5}
	baseScore := w.Score(base)

	higherNDVI := base
	higherNDVI.NDVI = 0.6
	assert.Greater(t, w.Score(higherNDVI), baseScore)

	higherWater := base
	higherWater.Water = 0.9
	assert.Greater(t, w.Score(higherWater), baseScore)

	higherSoil := base
	higherSoil.Soil = 0.8
	assert.Greater(t, w.Score(higherSoil), baseScore)
}

func TestCompute_BoundsAndDeterminism(t *testing.T) {
	m, err := envmap.New(23.0, 72.5, 1000, 6, 6)
	require.NoError(t, err)
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			m.Set(row, col, envmap.Cell{
				NDVI:  float64(row) / 5,
				Water: float64(col) / 5,
				Soil:  0.5,
			})
		}
	}

	g1, err := Compute(m, DefaultWeights(), Options{})
	require.NoError(t, err)
	g2, err := Compute(m, DefaultWeights(), Options{})
	require.NoError(t, err)

	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			s := g1.At(row, col)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
			assert.Equal(t, s, g2.At(row, col), "no jitter means identical grids")
		}
	}
}

func TestCompute_JitterStaysBounded(t *testing.T) {
	m, err := envmap.New(23.0, 72.5, 1000, 4, 4)
	require.NoError(t, err)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.Set(row, col, envmap.Cell{NDVI: 1, Water: 1, Soil: 1})
		}
	}

	g, err := Compute(m, DefaultWeights(), Options{JitterAmplitude: 5, JitterSeed: 9})
	require.NoError(t, err)
	for _, s := range g.Scores() {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}

func TestCompute_RejectsBadWeights(t *testing.T) {
	m, err := envmap.New(23.0, 72.5, 1000, 2, 2)
	require.NoError(t, err)

	_, err = Compute(m, Weights{NDVI: 0.9, Water: 0.9, Soil: 0.9}, Options{})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	points := []model.PlantationPoint{
		{Score: 80}, {Score: 70}, {Score: 90},
	}
	sum, err := Summarize(points)
	require.NoError(t, err)

	assert.InDelta(t, 80.0, sum.Mean, 1e-9)
	assert.InDelta(t, 80.0, sum.Median, 1e-9)
	assert.InDelta(t, 70.0, sum.Min, 1e-9)
	assert.InDelta(t, 90.0, sum.Max, 1e-9)
	assert.Equal(t, "excellent site for plantation", sum.Interpretation)
}

func TestSummarize_Bands(t *testing.T) {
	good, err := Summarize([]model.PlantationPoint{{Score: 55}, {Score: 60}})
	require.NoError(t, err)
	assert.Equal(t, "good site with some constraints", good.Interpretation)

	poor, err := Summarize([]model.PlantationPoint{{Score: 20}, {Score: 30}})
	require.NoError(t, err)
	assert.Equal(t, "challenging site, careful planning needed", poor.Interpretation)
}

func TestSummarize_Empty(t *testing.T) {
	sum, err := Summarize(nil)
	require.NoError(t, err)
	assert.Zero(t, sum.Mean)
	assert.Equal(t, "no candidate cells above threshold", sum.Interpretation)
}
