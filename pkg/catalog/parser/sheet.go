package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
)

// Layout locates the header and the first data row of a sheet (0-based).
type Layout struct {
	HeaderRow    int
	DataStartRow int
}

// DefaultLayout returns the catalog convention: row 1 decorative, row 2
// header, data from row 3.
func DefaultLayout() Layout {
	return Layout{HeaderRow: 1, DataStartRow: 2}
}

// DataRow is a non-blank row below the header.
type DataRow struct {
	// Index is the 0-based worksheet row.
	Index int
	// Cells holds the row values; it may be shorter than the column list.
	Cells []models.Value
}

// Table is a sheet split into column names and data rows.
type Table struct {
	Columns []string
	Rows    []DataRow
}

// NormalizeSheet derives column names from the header row and collects the
// non-blank rows from DataStartRow on. A grid too short to hold a data row
// yields an empty table.
func NormalizeSheet(grid [][]models.Value, layout Layout) Table {
	if len(grid) < layout.DataStartRow+1 {
		return Table{}
	}

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}

	var header []models.Value
	if layout.HeaderRow >= 0 && layout.HeaderRow < len(grid) {
		header = grid[layout.HeaderRow]
	}
	columns := make([]string, width)
	for i := range columns {
		columns[i] = columnName(header, i)
	}

	var rows []DataRow
	for idx := layout.DataStartRow; idx < len(grid); idx++ {
		if isBlankRow(grid[idx]) {
			continue
		}
		rows = append(rows, DataRow{Index: idx, Cells: grid[idx]})
	}

	return Table{Columns: columns, Rows: rows}
}

// columnName returns the trimmed header text, or Column_N for a blank header cell.
func columnName(header []models.Value, i int) string {
	v := cellAt(header, i)
	if v.IsBlank() {
		return fmt.Sprintf("Column_%d", i+1)
	}
	return strings.TrimSpace(v.Text())
}

func isBlankRow(row []models.Value) bool {
	for _, v := range row {
		if !v.IsBlank() {
			return false
		}
	}
	return true
}

func cellAt(row []models.Value, i int) models.Value {
	if i < len(row) {
		return row[i]
	}
	return models.Absent()
}
