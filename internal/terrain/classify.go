package terrain

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vanam-labs/plantation-cli/internal/envmap"
)

// Stats holds the per-class share of classified blocks, in [0,1].
type Stats map[Class]float64

// ClassifyImage converts a decoded image into an environmental map by
// classifying pixel blocks and applying class priors. The map is georeferenced
// to the given center and radius.
func (c *Classifier) ClassifyImage(img image.Image, lat, lon, radiusM float64) (*envmap.Map, Stats, error) {
	bounds := img.Bounds()
	rows := bounds.Dy() / c.blockSize
	cols := bounds.Dx() / c.blockSize
	if rows == 0 || cols == 0 {
		return nil, nil, eris.Errorf("terrain: image %dx%d smaller than block size %d",
			bounds.Dx(), bounds.Dy(), c.blockSize)
	}

	m, err := envmap.New(lat, lon, radiusM, rows, cols)
	if err != nil {
		return nil, nil, err
	}

	counts := make(map[Class]int)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			rect := image.Rect(
				bounds.Min.X+col*c.blockSize,
				bounds.Min.Y+row*c.blockSize,
				bounds.Min.X+(col+1)*c.blockSize,
				bounds.Min.Y+(row+1)*c.blockSize,
			)
			class := c.Classify(BlockFeatures(img, rect))
			counts[class]++
			m.Set(row, col, c.cellFor(class))
		}
	}

	total := float64(rows * cols)
	stats := make(Stats, len(counts))
	for class, n := range counts {
		stats[class] = float64(n) / total
	}

	zap.L().Debug("classified image",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Float64("forest_share", stats[Forest]),
		zap.Float64("water_share", stats[Water]),
	)
	return m, stats, nil
}

// ClassifyReader decodes PNG/JPG data from r and classifies it.
// A malformed image yields a decode error for the caller to surface.
func (c *Classifier) ClassifyReader(r io.Reader, lat, lon, radiusM float64) (*envmap.Map, Stats, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, nil, eris.Wrap(err, "terrain: decode image")
	}
	zap.L().Debug("decoded upload", zap.String("format", format))
	return c.ClassifyImage(img, lat, lon, radiusM)
}

// ClassifyFile opens and classifies an image file.
func (c *Classifier) ClassifyFile(path string, lat, lon, radiusM float64) (*envmap.Map, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "terrain: open image %s", path)
	}
	defer f.Close() //nolint:errcheck
	return c.ClassifyReader(f, lat, lon, radiusM)
}
