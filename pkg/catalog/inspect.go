package catalog

import (
	"fmt"
	"slices"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
	"github.com/ukaji3/catalogjson-go/pkg/catalog/parser"
	"github.com/xuri/excelize/v2"
)

// InspectOptions limits what Inspect reports.
type InspectOptions struct {
	// Sheet restricts the report to one sheet. Empty means all sheets.
	Sheet string
	// Rows is the number of preview rows per sheet (default 5).
	Rows int
	// Columns is the number of preview columns per row (default 10).
	Columns int
}

// SheetInspection describes the raw layout of one sheet.
type SheetInspection struct {
	Name        string
	RowCount    int
	ColumnCount int
	Bounds      parser.Bounds
	// Preview holds the leading rows, truncated to the column limit.
	Preview [][]models.Value
}

// Inspect reports the raw structure of the workbook at path so the header
// and data rows can be located before extraction.
func Inspect(path string, opts InspectOptions) ([]SheetInspection, error) {
	if opts.Rows <= 0 {
		opts.Rows = 5
	}
	if opts.Columns <= 0 {
		opts.Columns = 10
	}

	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if opts.Sheet != "" {
		if !slices.Contains(sheets, opts.Sheet) {
			return nil, fmt.Errorf("inspect %s: %w", path, excelize.ErrSheetNotExist{SheetName: opts.Sheet})
		}
		sheets = []string{opts.Sheet}
	}

	result := make([]SheetInspection, 0, len(sheets))
	for _, name := range sheets {
		grid, err := parser.ReadGrid(f, name)
		if err != nil {
			return nil, NewExtractionError(name, "rows", err)
		}

		info := SheetInspection{
			Name:     name,
			RowCount: len(grid),
			Bounds:   parser.DetectBounds(grid),
		}
		for _, row := range grid {
			info.ColumnCount = max(info.ColumnCount, len(row))
		}
		for i := 0; i < len(grid) && i < opts.Rows; i++ {
			row := grid[i]
			if len(row) > opts.Columns {
				row = row[:opts.Columns]
			}
			info.Preview = append(info.Preview, row)
		}
		result = append(result, info)
	}

	return result, nil
}
