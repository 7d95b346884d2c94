package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/vanam-labs/plantation-cli/internal/model"
)

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	Point       kmlPoint `xml:"Point"`
}

type kmlDocument struct {
	Name       string         `xml:"name"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kml struct {
	XMLName  xml.Name    `xml:"kml"`
	XMLNS    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

// WriteKML writes one Placemark per point. Coordinates use KML order,
// lon,lat,0, and the description carries the suitability score.
func WriteKML(w io.Writer, points []model.PlantationPoint) error {
	doc := kml{
		XMLNS:    "http://www.opengis.net/kml/2.2",
		Document: kmlDocument{Name: "Plantation Points"},
	}
	for _, p := range points {
		desc := fmt.Sprintf("Suitability score: %.2f", p.Score)
		if len(p.Species) > 0 {
			desc += " | Species: " + strings.Join(p.Species, ", ")
		}
		doc.Document.Placemarks = append(doc.Document.Placemarks, kmlPlacemark{
			Name:        fmt.Sprintf("Point %d", p.ID),
			Description: desc,
			Point: kmlPoint{
				Coordinates: fmt.Sprintf("%.6f,%.6f,0", p.Longitude, p.Latitude),
			},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return eris.Wrap(err, "export: write kml header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "export: encode kml")
	}
	return eris.Wrap(enc.Close(), "export: close kml encoder")
}
