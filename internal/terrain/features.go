// Package terrain classifies raster imagery into terrain classes and derives
// environmental maps from the classification.
package terrain

import (
	"image"
	"math"
)

// Class is a terrain category assigned to a pixel block.
type Class int

const (
	Forest Class = iota
	Agricultural
	Urban
	Water
	Barren

	numClasses
)

func (c Class) String() string {
	switch c {
	case Forest:
		return "forest"
	case Agricultural:
		return "agricultural"
	case Urban:
		return "urban"
	case Water:
		return "water"
	case Barren:
		return "barren"
	default:
		return "unknown"
	}
}

// Features are the color/texture descriptors computed over one pixel block.
// Channel values are normalized to [0,1].
type Features struct {
	R, G, B    float64
	Brightness float64
	Greenness  float64 // G minus the mean of R and B
	Blueness   float64 // B minus the mean of R and G
	Texture    float64 // standard deviation of luminance
}

// BlockFeatures computes features over the given region of the image.
func BlockFeatures(img image.Image, rect image.Rectangle) Features {
	rect = rect.Intersect(img.Bounds())

	var sumR, sumG, sumB float64
	var lums []float64

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16) / 65535
			g := float64(g16) / 65535
			b := float64(b16) / 65535
			sumR += r
			sumG += g
			sumB += b
			lums = append(lums, 0.299*r+0.587*g+0.114*b)
		}
	}

	n := float64(len(lums))
	if n == 0 {
		return Features{}
	}

	f := Features{
		R: sumR / n,
		G: sumG / n,
		B: sumB / n,
	}
	f.Brightness = (f.R + f.G + f.B) / 3
	f.Greenness = f.G - (f.R+f.B)/2
	f.Blueness = f.B - (f.R+f.G)/2

	mean := 0.0
	for _, l := range lums {
		mean += l
	}
	mean /= n
	variance := 0.0
	for _, l := range lums {
		variance += (l - mean) * (l - mean)
	}
	f.Texture = math.Sqrt(variance / n)

	return f
}
