package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/vanam-labs/plantation-cli/internal/model"
)

// csvHeader is the fixed column contract consumed by downstream GIS tooling.
var csvHeader = []string{"Point_ID", "Latitude", "Longitude", "Suitability_Score", "Recommended_Species"}

// WriteCSV writes one row per point. The species column joins names with
// ", "; the csv writer quotes it as needed.
func WriteCSV(w io.Writer, points []model.PlantationPoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.ID),
			strconv.FormatFloat(p.Latitude, 'f', 6, 64),
			strconv.FormatFloat(p.Longitude, 'f', 6, 64),
			strconv.FormatFloat(p.Score, 'f', 2, 64),
			strings.Join(p.Species, ", "),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "export: write csv row %d", p.ID)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}
