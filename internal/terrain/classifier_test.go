package terrain

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fill paints a solid color over the rectangle.
func fill(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// checker paints a checkerboard of two colors, producing high texture.
func checker(img *image.RGBA, rect image.Rectangle, a, b color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
}

func blockOf(t *testing.T, paint func(*image.RGBA)) Features {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	paint(img)
	return BlockFeatures(img, img.Bounds())
}

func TestClassify_TerrainClasses(t *testing.T) {
	c := NewClassifier(WithSeed(1))

	water := blockOf(t, func(img *image.RGBA) {
		fill(img, img.Bounds(), color.RGBA{0, 0, 200, 255})
	})
	assert.Equal(t, Water, c.Classify(water))

	forest := blockOf(t, func(img *image.RGBA) {
		checker(img, img.Bounds(), color.RGBA{10, 80, 20, 255}, color.RGBA{40, 180, 50, 255})
	})
	assert.Equal(t, Forest, c.Classify(forest))

	agricultural := blockOf(t, func(img *image.RGBA) {
		fill(img, img.Bounds(), color.RGBA{60, 160, 60, 255})
	})
	assert.Equal(t, Agricultural, c.Classify(agricultural))

	urban := blockOf(t, func(img *image.RGBA) {
		checker(img, img.Bounds(), color.RGBA{150, 150, 150, 255}, color.RGBA{230, 230, 230, 255})
	})
	assert.Equal(t, Urban, c.Classify(urban))

	barren := blockOf(t, func(img *image.RGBA) {
		fill(img, img.Bounds(), color.RGBA{160, 140, 120, 255})
	})
	assert.Equal(t, Barren, c.Classify(barren))
}

func TestBlockFeatures(t *testing.T) {
	f := blockOf(t, func(img *image.RGBA) {
		fill(img, img.Bounds(), color.RGBA{255, 0, 0, 255})
	})
	assert.InDelta(t, 1.0, f.R, 0.01)
	assert.InDelta(t, 0.0, f.G, 0.01)
	assert.InDelta(t, 0.0, f.Texture, 0.001, "uniform block has no texture")
	assert.Less(t, f.Greenness, 0.0)

	textured := blockOf(t, func(img *image.RGBA) {
		checker(img, img.Bounds(), color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255})
	})
	assert.Greater(t, textured.Texture, 0.4)
}

func TestClassifyImage_MapAndStats(t *testing.T) {
	// 64x64 image, block size 16 -> 4x4 map. Left half water, right half forest.
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill(img, image.Rect(0, 0, 32, 64), color.RGBA{0, 0, 200, 255})
	checker(img, image.Rect(32, 0, 64, 64), color.RGBA{10, 80, 20, 255}, color.RGBA{40, 180, 50, 255})

	c := NewClassifier(WithNoise(0))
	m, stats, err := c.ClassifyImage(img, 23.0, 72.5, 1000)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Rows)
	assert.Equal(t, 4, m.Cols)
	assert.InDelta(t, 0.5, stats[Water], 0.01)
	assert.InDelta(t, 0.5, stats[Forest], 0.01)

	// With noise disabled, cells carry the class priors exactly.
	waterCell := m.At(0, 0)
	assert.InDelta(t, 0.95, waterCell.Water, 1e-9)
	forestCell := m.At(0, 3)
	assert.InDelta(t, 0.85, forestCell.NDVI, 1e-9)
}

func TestClassifyImage_AllValuesBounded(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 48, 48))
	checker(img, img.Bounds(), color.RGBA{200, 200, 200, 255}, color.RGBA{20, 120, 40, 255})

	c := NewClassifier(WithSeed(5), WithNoise(0.2))
	m, _, err := c.ClassifyImage(img, 23.0, 72.5, 1000)
	require.NoError(t, err)

	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			cell := m.At(row, col)
			assert.GreaterOrEqual(t, cell.NDVI, 0.0)
			assert.LessOrEqual(t, cell.NDVI, 1.0)
			assert.GreaterOrEqual(t, cell.Soil, 0.0)
			assert.LessOrEqual(t, cell.Soil, 1.0)
			assert.GreaterOrEqual(t, cell.Water, 0.0)
			assert.LessOrEqual(t, cell.Water, 1.0)
		}
	}
}

func TestClassifyImage_TooSmall(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	c := NewClassifier()
	_, _, err := c.ClassifyImage(img, 23.0, 72.5, 1000)
	assert.Error(t, err)
}

func TestClassifyReader_PNGRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	fill(img, img.Bounds(), color.RGBA{0, 0, 200, 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	c := NewClassifier(WithNoise(0))
	m, stats, err := c.ClassifyReader(&buf, 23.0, 72.5, 500)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows)
	assert.InDelta(t, 1.0, stats[Water], 1e-9)
}

func TestClassifyReader_MalformedImage(t *testing.T) {
	c := NewClassifier()
	_, _, err := c.ClassifyReader(bytes.NewReader([]byte("not an image")), 23.0, 72.5, 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}
