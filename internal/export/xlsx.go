package export

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/vanam-labs/plantation-cli/internal/model"
)

// WriteXLSX streams a single-sheet workbook mirroring the CSV columns.
func WriteXLSX(w io.Writer, points []model.PlantationPoint) error {
	file, err := buildWorkbook(points)
	if err != nil {
		return err
	}
	return eris.Wrap(file.Write(w), "export: write xlsx")
}

// WriteXLSXFile writes the workbook to path.
func WriteXLSXFile(path string, points []model.PlantationPoint) error {
	file, err := buildWorkbook(points)
	if err != nil {
		return err
	}
	return eris.Wrapf(file.Save(path), "export: save xlsx %s", path)
}

func buildWorkbook(points []model.PlantationPoint) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Plantation Points")
	if err != nil {
		return nil, eris.Wrap(err, "export: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range csvHeader {
		header.AddCell().SetString(col)
	}

	for _, p := range points {
		row := sheet.AddRow()
		row.AddCell().SetInt(p.ID)
		row.AddCell().SetFloatWithFormat(p.Latitude, "0.000000")
		row.AddCell().SetFloatWithFormat(p.Longitude, "0.000000")
		row.AddCell().SetFloatWithFormat(p.Score, "0.00")
		row.AddCell().SetString(strings.Join(p.Species, ", "))
	}

	return file, nil
}
