package export

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/vanam-labs/plantation-cli/internal/model"
)

// WriteShapefile writes a POINT shapefile set (.shp/.shx/.dbf) at path.
// DBF field names are limited to 10 characters and species strings are
// truncated to fit the fixed-width attribute column.
func WriteShapefile(path string, points []model.PlantationPoint) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close() //nolint:errcheck

	fields := []shp.Field{
		shp.NumberField("POINT_ID", 10),
		shp.FloatField("LATITUDE", 13, 6),
		shp.FloatField("LONGITUDE", 13, 6),
		shp.FloatField("SCORE", 6, 2),
		shp.StringField("SPECIES", 128),
	}
	if err := w.SetFields(fields); err != nil {
		return eris.Wrap(err, "export: set shapefile fields")
	}

	for i, p := range points {
		w.Write(&shp.Point{X: p.Longitude, Y: p.Latitude})

		species := strings.Join(p.Species, ", ")
		if len(species) > 128 {
			species = species[:128]
		}

		if err := w.WriteAttribute(i, 0, p.ID); err != nil {
			return eris.Wrapf(err, "export: shapefile attribute id row %d", i)
		}
		if err := w.WriteAttribute(i, 1, p.Latitude); err != nil {
			return eris.Wrapf(err, "export: shapefile attribute lat row %d", i)
		}
		if err := w.WriteAttribute(i, 2, p.Longitude); err != nil {
			return eris.Wrapf(err, "export: shapefile attribute lon row %d", i)
		}
		if err := w.WriteAttribute(i, 3, p.Score); err != nil {
			return eris.Wrapf(err, "export: shapefile attribute score row %d", i)
		}
		if err := w.WriteAttribute(i, 4, species); err != nil {
			return eris.Wrapf(err, "export: shapefile attribute species row %d", i)
		}
	}
	return nil
}
