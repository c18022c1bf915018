package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
)

var (
	s = models.String
	n = models.Number
)

func TestNormalizeSheet(t *testing.T) {
	grid := [][]models.Value{
		{s("logo")},
		{s(" Name "), s("CODE"), {}, s("Price")},
		{s("Bolt"), n(42), s("x"), n(1.5)},
		{},
		{s("  "), {}},
		{s("Nut"), s("ABC-99")},
	}

	table := NormalizeSheet(grid, DefaultLayout())

	assert.Equal(t, []string{"Name", "CODE", "Column_3", "Price"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Rows[0].Index)
	assert.Equal(t, 5, table.Rows[1].Index)
}

func TestNormalizeSheetTooShort(t *testing.T) {
	grid := [][]models.Value{
		{s("logo")},
		{s("Name"), s("CODE")},
	}

	table := NormalizeSheet(grid, DefaultLayout())
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)

	assert.Empty(t, NormalizeSheet(nil, DefaultLayout()).Rows)
}

func TestNormalizeSheetWidthFromWidestRow(t *testing.T) {
	grid := [][]models.Value{
		{},
		{s("Name")},
		{s("Bolt"), n(1), n(2)},
	}

	table := NormalizeSheet(grid, DefaultLayout())
	assert.Equal(t, []string{"Name", "Column_2", "Column_3"}, table.Columns)
}

func TestNormalizeSheetSkipLayout(t *testing.T) {
	grid := [][]models.Value{
		{s("title")},
		{s("subtitle")},
		{s("Name"), s("code")},
		{s("Bolt"), n(1)},
	}

	table := NormalizeSheet(grid, Layout{HeaderRow: 2, DataStartRow: 3})
	assert.Equal(t, []string{"Name", "code"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 3, table.Rows[0].Index)
}

func TestNormalizeSheetNumericHeader(t *testing.T) {
	grid := [][]models.Value{
		{},
		{n(2024), models.Bool(true)},
		{s("a"), s("b")},
	}

	table := NormalizeSheet(grid, DefaultLayout())
	assert.Equal(t, []string{"2024", "true"}, table.Columns)
}

func TestDetectBounds(t *testing.T) {
	grid := [][]models.Value{
		{},
		{{}, s("a"), s("b")},
		{{}, s("c")},
	}

	b := DetectBounds(grid)
	assert.Equal(t, "B2:C3", b.Range)
	assert.Equal(t, 3, b.NonEmpty)
	assert.InDelta(t, 0.75, b.Density, 1e-9)

	assert.Equal(t, Bounds{}, DetectBounds([][]models.Value{{s(" ")}}))
}
