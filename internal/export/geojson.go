package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/vanam-labs/plantation-cli/internal/model"
)

// WriteGeoJSON writes a FeatureCollection with one Point feature per
// plantation point. Coordinates follow GeoJSON order: [longitude, latitude].
func WriteGeoJSON(w io.Writer, points []model.PlantationPoint) error {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(points))}
	for _, p := range points {
		species := p.Species
		if species == nil {
			species = []string{}
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}),
			Properties: map[string]interface{}{
				"id":          p.ID,
				"suitability": p.Score,
				"species":     species,
			},
		})
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	_, err = w.Write(data)
	return eris.Wrap(err, "export: write geojson")
}

// ReadGeoJSON parses a FeatureCollection produced by WriteGeoJSON back into
// plantation points. Environmental factors are not part of the format and
// come back zero.
func ReadGeoJSON(r io.Reader) ([]model.PlantationPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "export: read geojson")
	}

	var fc geojson.FeatureCollection
	if err := fc.UnmarshalJSON(data); err != nil {
		return nil, eris.Wrap(err, "export: parse geojson")
	}

	points := make([]model.PlantationPoint, 0, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(*geom.Point)
		if !ok {
			return nil, eris.Errorf("export: feature %d is not a point", i)
		}
		coords := pt.Coords()

		p := model.PlantationPoint{
			Longitude: coords[0],
			Latitude:  coords[1],
		}
		if v, ok := f.Properties["id"].(float64); ok {
			p.ID = int(v)
		}
		if v, ok := f.Properties["suitability"].(float64); ok {
			p.Score = v
		}
		if raw, ok := f.Properties["species"].([]interface{}); ok {
			p.Species = make([]string, 0, len(raw))
			for _, s := range raw {
				if name, ok := s.(string); ok {
					p.Species = append(p.Species, name)
				}
			}
		}
		points = append(points, p)
	}
	return points, nil
}
