package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanam-labs/plantation-cli/internal/model"
)

func testPoints() []model.PlantationPoint {
	return []model.PlantationPoint{
		{
			ID:        1,
			Latitude:  23.030405,
			Longitude: 72.562708,
			Score:     87.5,
			Species:   []string{"Neem (Azadirachta indica)", "Teak (Tectona grandis)"},
		},
		{
			ID:        2,
			Latitude:  23.031512,
			Longitude: 72.563901,
			Score:     64.25,
			Species:   []string{"Acacia (Acacia nilotica)"},
		},
	}
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testPoints()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Point_ID", "Latitude", "Longitude", "Suitability_Score", "Recommended_Species"}, records[0])
	assert.Equal(t, []string{"1", "23.030405", "72.562708", "87.50", "Neem (Azadirachta indica), Teak (Tectona grandis)"}, records[1])
	assert.Equal(t, "2", records[2][0])
}

func TestWriteCSV_QuotesSpeciesField(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testPoints()))

	// The multi-species field contains commas, so the raw output must quote it.
	assert.Contains(t, buf.String(), `"Neem (Azadirachta indica), Teak (Tectona grandis)"`)
}

func TestGeoJSON_RoundTrip(t *testing.T) {
	points := testPoints()

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, points))

	parsed, err := ReadGeoJSON(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(points))

	for i, p := range points {
		assert.Equal(t, p.ID, parsed[i].ID)
		assert.InDelta(t, p.Latitude, parsed[i].Latitude, 1e-9)
		assert.InDelta(t, p.Longitude, parsed[i].Longitude, 1e-9)
		assert.InDelta(t, p.Score, parsed[i].Score, 1e-9)
		assert.Equal(t, p.Species, parsed[i].Species)
	}
}

func TestWriteGeoJSON_CoordinateOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, testPoints()[:1]))

	out := buf.String()
	assert.Contains(t, out, `"type":"FeatureCollection"`)
	// GeoJSON coordinates are [longitude, latitude].
	assert.Contains(t, out, `[72.562708,23.030405]`)
}

func TestWriteKML_PlacemarksAndCoordinates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, testPoints()))

	out := buf.String()
	assert.Contains(t, out, "<kml xmlns=\"http://www.opengis.net/kml/2.2\">")
	assert.Equal(t, 2, strings.Count(out, "<Placemark>"))
	// KML coordinates are lon,lat,alt.
	assert.Contains(t, out, "<coordinates>72.562708,23.030405,0</coordinates>")
	assert.Contains(t, out, "Suitability score: 87.50")
}

func TestWriteXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.xlsx")
	require.NoError(t, WriteXLSXFile(path, testPoints()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.shp")
	require.NoError(t, WriteShapefile(path, testPoints()))

	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		_, err := os.Stat(strings.TrimSuffix(path, ".shp") + ext)
		assert.NoError(t, err, ext)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("GeoJSON")
	require.NoError(t, err)
	assert.Equal(t, FormatGeoJSON, f)

	_, err = ParseFormat("dwg")
	require.Error(t, err)
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteAll(dir, "site", []Format{FormatCSV, FormatGeoJSON, FormatKML}, testPoints()))

	for _, name := range []string{"site.csv", "site.geojson", "site.kml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestWrite_Stream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, testPoints()))
	assert.True(t, strings.HasPrefix(buf.String(), "Point_ID,"))

	buf.Reset()
	require.NoError(t, Write(&buf, FormatXLSX, testPoints()))
	assert.NotZero(t, buf.Len())

	err := Write(&buf, FormatShapefile, testPoints())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", ContentType(FormatCSV))
	assert.Equal(t, "application/geo+json", ContentType(FormatGeoJSON))
	assert.Equal(t, "application/octet-stream", ContentType(FormatShapefile))
}

func TestWriteCSV_EmptyPoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
