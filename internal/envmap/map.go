// Package envmap defines the environmental map grid and its demo-mode sampler.
package envmap

import (
	"math"

	"github.com/rotisserie/eris"
)

// DegreesPerKM is an approximate conversion factor for latitude degrees to kilometers.
// At mid-latitudes, 1 degree of latitude is approximately 111 km.
const DegreesPerKM = 1.0 / 111.0

// Cell holds the three environmental factors for one grid cell, each in [0,1].
type Cell struct {
	NDVI  float64 `json:"ndvi"`
	Soil  float64 `json:"soil"`
	Water float64 `json:"water"`
}

// Map is a rectangular grid of environmental cells covering a square region
// centered on a geographic coordinate. It is produced once per analysis and
// treated as immutable afterward.
type Map struct {
	CenterLat float64
	CenterLon float64
	RadiusM   float64
	Rows      int
	Cols      int

	cells []Cell
}

// New allocates a zeroed map over the given region.
func New(lat, lon, radiusM float64, rows, cols int) (*Map, error) {
	if rows <= 0 || cols <= 0 {
		return nil, eris.Errorf("envmap: grid must be positive, got %dx%d", rows, cols)
	}
	if radiusM <= 0 {
		return nil, eris.New("envmap: radius must be positive")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, eris.Errorf("envmap: invalid center coordinate (%f, %f)", lat, lon)
	}
	return &Map{
		CenterLat: lat,
		CenterLon: lon,
		RadiusM:   radiusM,
		Rows:      rows,
		Cols:      cols,
		cells:     make([]Cell, rows*cols),
	}, nil
}

// At returns the cell at (row, col). Out-of-range access panics, matching
// slice semantics.
func (m *Map) At(row, col int) Cell {
	return m.cells[row*m.Cols+col]
}

// Set stores a cell at (row, col).
func (m *Map) Set(row, col int, c Cell) {
	m.cells[row*m.Cols+col] = c
}

// Coord returns the geographic coordinate of the center of cell (row, col).
// Row 0 is the northern edge of the region.
func (m *Map) Coord(row, col int) (lat, lon float64) {
	radiusLatDeg := (m.RadiusM / 1000.0) * DegreesPerKM
	radiusLonDeg := radiusLatDeg / math.Cos(m.CenterLat*math.Pi/180)

	fr := (float64(row) + 0.5) / float64(m.Rows)
	fc := (float64(col) + 0.5) / float64(m.Cols)

	lat = m.CenterLat + (0.5-fr)*2*radiusLatDeg
	lon = m.CenterLon + (fc-0.5)*2*radiusLonDeg
	return lat, lon
}

// Mean returns the per-factor means over all cells.
func (m *Map) Mean() Cell {
	var sum Cell
	for _, c := range m.cells {
		sum.NDVI += c.NDVI
		sum.Soil += c.Soil
		sum.Water += c.Water
	}
	n := float64(len(m.cells))
	return Cell{NDVI: sum.NDVI / n, Soil: sum.Soil / n, Water: sum.Water / n}
}

// Clamp01 bounds a value to [0,1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
