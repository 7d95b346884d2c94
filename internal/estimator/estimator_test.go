package estimator

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanam-labs/plantation-cli/internal/model"
	"github.com/vanam-labs/plantation-cli/pkg/tambo"
)

func demoRequest() model.AnalysisRequest {
	return model.AnalysisRequest{
		Latitude:  23.0,
		Longitude: 72.5,
		RadiusM:   1000,
		Seed:      42,
	}
}

func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{40, 180, 50, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "site.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLocal_DemoSampling(t *testing.T) {
	l := NewLocal(DefaultLocalConfig())
	est, err := l.Estimate(context.Background(), demoRequest())
	require.NoError(t, err)

	assert.Equal(t, SourceDemo, est.Source)
	assert.Equal(t, DefaultRows, est.Map.Rows)
	assert.Equal(t, DefaultCols, est.Map.Cols)
	assert.Nil(t, est.Species)
	assert.Empty(t, est.Warning)
}

func TestLocal_DemoSamplingReproducible(t *testing.T) {
	l := NewLocal(DefaultLocalConfig())
	a, err := l.Estimate(context.Background(), demoRequest())
	require.NoError(t, err)
	b, err := l.Estimate(context.Background(), demoRequest())
	require.NoError(t, err)
	assert.Equal(t, a.Map.At(3, 7), b.Map.At(3, 7))
}

func TestLocal_ImageClassification(t *testing.T) {
	req := demoRequest()
	req.ImagePath = writeTestPNG(t)

	l := NewLocal(DefaultLocalConfig())
	est, err := l.Estimate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, SourceImage, est.Source)
	assert.Equal(t, 4, est.Map.Rows)
}

func TestLocal_BadImageFallsBackToDemo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	req := demoRequest()
	req.ImagePath = path

	l := NewLocal(DefaultLocalConfig())
	est, err := l.Estimate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, SourceDemo, est.Source)
	assert.Contains(t, est.Warning, "demo estimation")
}

func TestLocal_BadImageFailsWhenFallbackDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	cfg := DefaultLocalConfig()
	cfg.FallbackToDemo = false
	req := demoRequest()
	req.ImagePath = path

	_, err := NewLocal(cfg).Estimate(context.Background(), req)
	require.Error(t, err)
}

type stubTambo struct {
	resp *tambo.AnalyzeResponse
	err  error
}

func (s *stubTambo) Analyze(ctx context.Context, req tambo.AnalyzeRequest) (*tambo.AnalyzeResponse, error) {
	return s.resp, s.err
}

func TestRemote_Success(t *testing.T) {
	r := NewRemote(&stubTambo{
		resp: &tambo.AnalyzeResponse{
			SuitabilityGrid:    [][]float64{{80, 60}, {40, 90}},
			RecommendedSpecies: []string{"Teak (Tectona grandis)"},
			Environmental:      tambo.Environmental{NDVI: 0.7, Water: 0.6, Soil: 0.65},
			Confidence:         0.88,
		},
	}, NewLocal(DefaultLocalConfig()))

	est, err := r.Estimate(context.Background(), demoRequest())
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, est.Source)
	assert.Equal(t, []string{"Teak (Tectona grandis)"}, est.Species)
	assert.InDelta(t, 0.88, est.Confidence, 1e-9)
	assert.False(t, est.Fallback)
	require.NotNil(t, est.Env)
	assert.InDelta(t, 0.7, est.Env.NDVI, 1e-9)

	// Remote scores survive the round trip through the environmental map.
	cell := est.Map.At(0, 0)
	assert.InDelta(t, 0.8, cell.NDVI, 1e-9)
	assert.InDelta(t, 0.8, cell.Water, 1e-9)
}

func TestRemote_FallsBackOnError(t *testing.T) {
	r := NewRemote(&stubTambo{err: eris.New("service unavailable")}, NewLocal(DefaultLocalConfig()))

	est, err := r.Estimate(context.Background(), demoRequest())
	require.NoError(t, err)
	assert.Equal(t, SourceDemo, est.Source)
	assert.Contains(t, est.Warning, "computed locally")
	assert.True(t, est.Fallback)
}

func TestRemote_RaggedGridRejected(t *testing.T) {
	r := NewRemote(&stubTambo{
		resp: &tambo.AnalyzeResponse{SuitabilityGrid: [][]float64{{80, 60}, {40}}},
	}, NewLocal(DefaultLocalConfig()))

	_, err := r.Estimate(context.Background(), demoRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ragged")
}
