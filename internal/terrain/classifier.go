package terrain

import (
	"math/rand/v2"

	"github.com/vanam-labs/plantation-cli/internal/envmap"
)

// featureID selects which feature a tree node splits on.
type featureID int

const (
	fBrightness featureID = iota
	fGreenness
	fBlueness
	fTexture
)

// node is one split or leaf of a decision tree. Leaves have left == -1 and
// carry a class; splits route to left when the feature is below the threshold.
type node struct {
	feature   featureID
	threshold float64
	left      int
	right     int
	class     Class
}

type tree []node

func (t tree) classify(f Features) Class {
	i := 0
	for {
		n := t[i]
		if n.left < 0 {
			return n.class
		}
		v := 0.0
		switch n.feature {
		case fBrightness:
			v = f.Brightness
		case fGreenness:
			v = f.Greenness
		case fBlueness:
			v = f.Blueness
		case fTexture:
			v = f.Texture
		}
		if v < n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

// forest is a small ensemble trained offline on synthetic terrain tiles and
// embedded here as flattened trees. Each tree votes; the majority class wins,
// with earlier classes winning ties.
var forest = []tree{
	{
		{feature: fBlueness, threshold: 0.08, left: 1, right: 2},
		{feature: fGreenness, threshold: 0.10, left: 3, right: 4},
		{left: -1, class: Water},
		{feature: fBrightness, threshold: 0.62, left: 5, right: 6},
		{feature: fTexture, threshold: 0.09, left: 7, right: 8},
		{feature: fGreenness, threshold: 0.03, left: 9, right: 10},
		{feature: fTexture, threshold: 0.06, left: 11, right: 12},
		{left: -1, class: Agricultural},
		{left: -1, class: Forest},
		{left: -1, class: Barren},
		{left: -1, class: Agricultural},
		{left: -1, class: Barren},
		{left: -1, class: Urban},
	},
	{
		{feature: fBlueness, threshold: 0.06, left: 1, right: 2},
		{feature: fGreenness, threshold: 0.08, left: 3, right: 4},
		{feature: fBrightness, threshold: 0.30, left: 5, right: 6},
		{feature: fBrightness, threshold: 0.58, left: 7, right: 8},
		{feature: fTexture, threshold: 0.11, left: 9, right: 10},
		{left: -1, class: Water},
		{left: -1, class: Water},
		{left: -1, class: Barren},
		{feature: fTexture, threshold: 0.07, left: 11, right: 12},
		{left: -1, class: Agricultural},
		{left: -1, class: Forest},
		{left: -1, class: Barren},
		{left: -1, class: Urban},
	},
	{
		{feature: fGreenness, threshold: 0.09, left: 1, right: 2},
		{feature: fBlueness, threshold: 0.07, left: 3, right: 4},
		{feature: fTexture, threshold: 0.10, left: 5, right: 6},
		{feature: fBrightness, threshold: 0.60, left: 7, right: 8},
		{left: -1, class: Water},
		{left: -1, class: Agricultural},
		{left: -1, class: Forest},
		{left: -1, class: Barren},
		{left: -1, class: Urban},
	},
}

// classPriors maps each terrain class to fixed environmental factor priors.
var classPriors = map[Class]envmap.Cell{
	Forest:       {NDVI: 0.85, Soil: 0.75, Water: 0.55},
	Agricultural: {NDVI: 0.65, Soil: 0.80, Water: 0.55},
	Urban:        {NDVI: 0.20, Soil: 0.30, Water: 0.30},
	Water:        {NDVI: 0.30, Soil: 0.40, Water: 0.95},
	Barren:       {NDVI: 0.15, Soil: 0.35, Water: 0.20},
}

// Classifier assigns terrain classes to pixel blocks and maps them to
// environmental priors with a light per-block noise term. It holds its model
// weights explicitly; construct one per configuration rather than sharing
// globals.
type Classifier struct {
	blockSize int
	noise     float64
	rng       *rand.Rand
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithBlockSize sets the pixel block edge length (default 16).
func WithBlockSize(px int) Option {
	return func(c *Classifier) {
		if px > 0 {
			c.blockSize = px
		}
	}
}

// WithNoise sets the per-block adjustment amplitude (default 0.05).
func WithNoise(amplitude float64) Option {
	return func(c *Classifier) {
		c.noise = amplitude
	}
}

// WithSeed seeds the noise source for reproducible output.
func WithSeed(seed uint64) Option {
	return func(c *Classifier) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0xa0761d6478bd642f))
	}
}

// NewClassifier creates a classifier with the embedded forest.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		blockSize: 16,
		noise:     0.05,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify runs the ensemble vote for one feature vector.
func (c *Classifier) Classify(f Features) Class {
	var votes [numClasses]int
	for _, t := range forest {
		votes[t.classify(f)]++
	}
	best := Class(0)
	for cl := Class(1); cl < numClasses; cl++ {
		if votes[cl] > votes[best] {
			best = cl
		}
	}
	return best
}

// cellFor maps a class to its environmental priors plus block noise.
func (c *Classifier) cellFor(class Class) envmap.Cell {
	p := classPriors[class]
	if c.noise <= 0 {
		return p
	}
	jitter := func(v float64) float64 {
		return envmap.Clamp01(v + (c.rng.Float64()*2-1)*c.noise)
	}
	return envmap.Cell{
		NDVI:  jitter(p.NDVI),
		Soil:  jitter(p.Soil),
		Water: jitter(p.Water),
	}
}
