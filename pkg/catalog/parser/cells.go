// Package parser turns worksheet cells into normalized catalog records.
package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid reads the cached cell values of a sheet into a typed grid.
// Row and column indices are 0-based; rows keep their worksheet position,
// so blank rows between data rows appear as empty slices.
func ReadGrid(f *excelize.File, sheetName string) ([][]models.Value, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]models.Value, len(rows))
	for rowIdx, row := range rows {
		values := make([]models.Value, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				cellType = excelize.CellTypeUnset
			}
			values[colIdx] = classifyCell(raw, cellType)
		}
		grid[rowIdx] = values
	}

	return grid, nil
}

// classifyCell turns a raw cell string into a typed value using the cell's
// stored type. Numeric cells carry no type attribute, so an unset type is
// treated as a number when it parses as one.
func classifyCell(raw string, cellType excelize.CellType) models.Value {
	if raw == "" {
		return models.Absent()
	}
	switch cellType {
	case excelize.CellTypeBool:
		switch strings.ToUpper(raw) {
		case "1", "TRUE":
			return models.Bool(true)
		case "0", "FALSE":
			return models.Bool(false)
		}
		return models.String(raw)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return models.Number(f)
		}
		return models.String(raw)
	default:
		// Shared and inline strings, string formula results, ISO dates and errors.
		return models.String(raw)
	}
}
