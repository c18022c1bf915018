package parser

import (
	"fmt"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
	"github.com/xuri/excelize/v2"
)

// Bounds describes the used region of a sheet.
type Bounds struct {
	// Range is the cell range in A1 notation (e.g. "A1:D10"), empty for a blank sheet.
	Range string
	// NonEmpty is the number of non-blank cells in the range.
	NonEmpty int
	// Density is NonEmpty divided by the number of cells in the range.
	Density float64
}

// DetectBounds finds the bounding box of non-blank cells in a grid.
func DetectBounds(grid [][]models.Value) Bounds {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return Bounds{}
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmpty := countNonEmptyCells(grid, minRow, maxRow, minCol, maxCol)

	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)

	return Bounds{
		Range:    fmt.Sprintf("%s:%s", startCell, endCell),
		NonEmpty: nonEmpty,
		Density:  float64(nonEmpty) / float64(totalCells),
	}
}

// findDataBounds finds the bounding box of non-blank cells.
func findDataBounds(grid [][]models.Value) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell.IsBlank() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-blank cells within bounds.
func countNonEmptyCells(grid [][]models.Value, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if !row[colIdx].IsBlank() {
				count++
			}
		}
	}
	return count
}
