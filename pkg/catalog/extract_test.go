package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeCatalog saves a two-sheet catalog workbook plus an empty sheet.
func writeCatalog(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	// Widgets: banner row, header row, data rows with a blank row in between.
	require.NoError(t, f.SetSheetName("Sheet1", "Widgets"))
	cells := map[string]any{
		"A1": "Product images",
		"A2": "Name", "B2": "CODE", "D2": "Price",
		"A3": " Bolt ", "B3": 42, "C3": "x", "D3": 1.5,
		"A4": "Nut", "B4": "ABC-99",
		"A6": "Washer", "D6": 0.25,
		"A7": "Screw", "B7": 100.0,
	}
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Widgets", cell, v))
	}

	_, err := f.NewSheet("配件")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("配件", "A2", "code"))
	require.NoError(t, f.SetCellValue("配件", "B2", "名称"))
	require.NoError(t, f.SetCellValue("配件", "A3", "7.0"))
	require.NoError(t, f.SetCellValue("配件", "B3", "螺丝"))

	_, err = f.NewSheet("Empty")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Empty", "A1", "banner only"))

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtract(t *testing.T) {
	path := writeCatalog(t)

	doc, err := Extract(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Widgets", "配件", "Empty"}, doc.SheetNames())

	widgets, ok := doc.Sheet("Widgets")
	require.True(t, ok)
	require.Len(t, widgets, 4)

	codes := make([]string, len(widgets))
	rows := make([]int, len(widgets))
	for i, rec := range widgets {
		codes[i] = rec.Code()
		rows[i] = rec.ExcelRow()
	}
	assert.Equal(t, []string{"000042", "ABC-99", "Widgets_0003", "000100"}, codes)
	assert.Equal(t, []int{3, 4, 5, 6}, rows)
	assert.Equal(t, []string{"Name", "Column_3", "Price", "CODE", "_excel_row"}, widgets[0].Keys())

	name, _ := widgets[0].Get("Name")
	assert.Equal(t, "Bolt", name.Str)

	parts, ok := doc.Sheet("配件")
	require.True(t, ok)
	require.Len(t, parts, 1)
	assert.Equal(t, "000007", parts[0].Code())
	_, hasLower := parts[0].Get("code")
	assert.False(t, hasLower)

	empty, ok := doc.Sheet("Empty")
	require.True(t, ok)
	assert.Empty(t, empty)
}

func TestExtractSourceRowNumbers(t *testing.T) {
	path := writeCatalog(t)

	opts := DefaultOptions()
	opts.SourceRowNumbers = true
	doc, err := Extract(path, opts)
	require.NoError(t, err)

	widgets, _ := doc.Sheet("Widgets")
	require.Len(t, widgets, 4)
	assert.Equal(t, 6, widgets[2].ExcelRow())
	assert.Equal(t, 7, widgets[3].ExcelRow())
}

func TestExtractSkipStrategy(t *testing.T) {
	path := writeCatalog(t)

	opts := DefaultOptions()
	opts.Strategy = StrategySkip
	opts.SkipRows = 1
	doc, err := Extract(path, opts)
	require.NoError(t, err)

	widgets, _ := doc.Sheet("Widgets")
	require.Len(t, widgets, 4)
	assert.Equal(t, "000042", widgets[0].Code())
	assert.Equal(t, 3, widgets[0].ExcelRow())
}

func TestExtractManualStrategy(t *testing.T) {
	path := writeCatalog(t)

	opts := DefaultOptions()
	opts.Strategy = StrategyManual
	opts.HeaderRow = 2
	opts.DataStartRow = 6
	doc, err := Extract(path, opts)
	require.NoError(t, err)

	widgets, _ := doc.Sheet("Widgets")
	require.Len(t, widgets, 2)
	assert.Equal(t, "Widgets_0001", widgets[0].Code())
	assert.Equal(t, 6, widgets[0].ExcelRow())
}

func TestExtractReaderMatchesExtract(t *testing.T) {
	path := writeCatalog(t)

	fromPath, err := Extract(path, DefaultOptions())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fromReader, err := ExtractReader(bytes.NewReader(data), DefaultOptions())
	require.NoError(t, err)

	a, err := fromPath.MarshalJSON()
	require.NoError(t, err)
	b, err := fromReader.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestExtractFileNotFound(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.True(t, errors.Is(err, ErrFileNotFound), "got %v", err)
}

func TestExtractInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	_, err := Extract(path, DefaultOptions())
	assert.True(t, errors.Is(err, ErrInvalidFormat), "got %v", err)
	assert.Contains(t, err.Error(), path)
}

func TestExtractInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Strategy = StrategyManual
	opts.HeaderRow = 3
	opts.DataStartRow = 3

	_, err := Extract("does-not-matter.xlsx", opts)
	assert.True(t, errors.Is(err, ErrInvalidOptions), "got %v", err)
}

func TestOptionsLayout(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		header     int
		dataStart  int
		shouldFail bool
	}{
		{"default", DefaultOptions(), 1, 2, false},
		{"zero value", Options{}, 1, 2, false},
		{"skip two", Options{Strategy: StrategySkip, SkipRows: 2}, 2, 3, false},
		{"skip none", Options{Strategy: StrategySkip}, 0, 1, false},
		{"skip negative", Options{Strategy: StrategySkip, SkipRows: -1}, 0, 0, true},
		{"manual", Options{Strategy: StrategyManual, HeaderRow: 4, DataStartRow: 6}, 3, 5, false},
		{"manual header zero", Options{Strategy: StrategyManual, HeaderRow: 0, DataStartRow: 2}, 0, 0, true},
		{"manual data before header", Options{Strategy: StrategyManual, HeaderRow: 4, DataStartRow: 2}, 0, 0, true},
		{"unknown", Options{Strategy: "auto"}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := tt.opts.Layout()
			if tt.shouldFail {
				assert.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.header, layout.HeaderRow)
			assert.Equal(t, tt.dataStart, layout.DataStartRow)
		})
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("skip")
	require.NoError(t, err)
	assert.Equal(t, StrategySkip, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyOffset, s)

	_, err = ParseStrategy("auto")
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestExtractionError(t *testing.T) {
	inner := errors.New("boom")
	err := NewExtractionError("Widgets", "rows", inner)

	assert.Equal(t, `sheet "Widgets": reading rows: boom`, err.Error())
	assert.ErrorIs(t, err, inner)

	var target *ExtractionError
	assert.True(t, errors.As(error(err), &target))
	assert.Equal(t, "Widgets", target.SheetName)
}

func TestInspect(t *testing.T) {
	path := writeCatalog(t)

	sheets, err := Inspect(path, InspectOptions{})
	require.NoError(t, err)
	require.Len(t, sheets, 3)

	w := sheets[0]
	assert.Equal(t, "Widgets", w.Name)
	assert.Equal(t, 7, w.RowCount)
	assert.Equal(t, 4, w.ColumnCount)
	assert.Equal(t, "A1:D7", w.Bounds.Range)
	assert.Len(t, w.Preview, 5)

	one, err := Inspect(path, InspectOptions{Sheet: "Empty", Rows: 1, Columns: 1})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "A1:A1", one[0].Bounds.Range)
	require.Len(t, one[0].Preview, 1)
	assert.Len(t, one[0].Preview[0], 1)
}

func TestInspectUnknownSheet(t *testing.T) {
	path := writeCatalog(t)

	_, err := Inspect(path, InspectOptions{Sheet: "Nope"})
	var sheetErr excelize.ErrSheetNotExist
	require.True(t, errors.As(err, &sheetErr), "got %v", err)
	assert.Equal(t, "Nope", sheetErr.SheetName)
}
