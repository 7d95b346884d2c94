// Package export serializes plantation point lists to the supported output
// formats.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vanam-labs/plantation-cli/internal/model"
)

// Format identifies an output serialization.
type Format string

const (
	FormatCSV       Format = "csv"
	FormatGeoJSON   Format = "geojson"
	FormatKML       Format = "kml"
	FormatXLSX      Format = "xlsx"
	FormatShapefile Format = "shp"
)

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatCSV, FormatGeoJSON, FormatKML, FormatXLSX, FormatShapefile}
}

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCSV, FormatGeoJSON, FormatKML, FormatXLSX, FormatShapefile:
		return f, nil
	default:
		return "", eris.Errorf("export: unknown format %q (supported: csv, geojson, kml, xlsx, shp)", s)
	}
}

// Write serializes points to w. The shapefile format writes a multi-file set
// and cannot target a single stream.
func Write(w io.Writer, format Format, points []model.PlantationPoint) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, points)
	case FormatGeoJSON:
		return WriteGeoJSON(w, points)
	case FormatKML:
		return WriteKML(w, points)
	case FormatXLSX:
		return WriteXLSX(w, points)
	default:
		return eris.Errorf("export: format %q cannot be written to a stream", format)
	}
}

// ContentType returns the MIME type served for a format.
func ContentType(f Format) string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatGeoJSON:
		return "application/geo+json"
	case FormatKML:
		return "application/vnd.google-earth.kml+xml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// WriteFile serializes points to path in the given format.
func WriteFile(path string, format Format, points []model.PlantationPoint) error {
	switch format {
	case FormatShapefile:
		// go-shp writes directly to its .shp/.shx/.dbf file set.
		return WriteShapefile(path, points)
	case FormatXLSX:
		return WriteXLSXFile(path, points)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := Write(f, format, points); err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}

// WriteAll writes every requested format under dir, naming files
// <base>.<ext>. Formats are written concurrently.
func WriteAll(dir, base string, formats []Format, points []model.PlantationPoint) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create dir %s", dir)
	}

	var g errgroup.Group
	for _, format := range formats {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s", base, format))
		g.Go(func() error {
			if err := WriteFile(path, format, points); err != nil {
				return err
			}
			zap.L().Info("wrote export", zap.String("path", path))
			return nil
		})
	}
	return g.Wait()
}
