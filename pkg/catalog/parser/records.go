package parser

import (
	"strings"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
)

// BuildRecord converts one data row into a record. Header fields come first
// in column order, followed by CODE and _excel_row. Duplicate column names
// keep the position of their first occurrence and the value of the last.
// Every column spelled code in any letter case, and any source column named
// _excel_row, is left out of the header fields.
func BuildRecord(columns []string, cells []models.Value, sheetName string, ordinal, excelRow int) models.Record {
	rec := models.NewRecord(len(columns) + 2)

	for i, name := range columns {
		if reserved(name) {
			continue
		}
		rec.Set(name, cellAt(cells, i).Trimmed())
	}

	codeCol := codeColumn(columns)
	raw := models.Absent()
	if codeCol >= 0 {
		raw = cellAt(cells, codeCol)
	}
	rec.Set(models.CodeField, models.String(NormalizeCode(raw, sheetName, ordinal)))
	rec.Set(models.ExcelRowField, models.Number(float64(excelRow)))
	return rec
}

// BuildRecords converts every row of a table. Ordinals count kept rows from
// 1. The _excel_row value counts kept rows from the first data row, or is
// the worksheet row itself when sourceRows is set.
func BuildRecords(t Table, layout Layout, sheetName string, sourceRows bool) []models.Record {
	records := make([]models.Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		excelRow := layout.DataStartRow + 1 + i
		if sourceRows {
			excelRow = row.Index + 1
		}
		records = append(records, BuildRecord(t.Columns, row.Cells, sheetName, i+1, excelRow))
	}
	return records
}

func reserved(name string) bool {
	return strings.EqualFold(name, models.CodeField) || name == models.ExcelRowField
}

// codeColumn returns the index of the code column: the last column named
// exactly CODE, else the last one named code in any letter case, else -1.
func codeColumn(columns []string) int {
	exact, folded := -1, -1
	for i, name := range columns {
		switch {
		case name == models.CodeField:
			exact = i
		case strings.EqualFold(name, models.CodeField):
			folded = i
		}
	}
	if exact >= 0 {
		return exact
	}
	return folded
}
