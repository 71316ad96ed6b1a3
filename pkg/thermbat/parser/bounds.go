package parser

import (
	"fmt"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/xuri/excelize/v2"
)

// DataBounds finds the bounding box of non-empty cells.
// All values are -1 when the grid holds no data.
func DataBounds(g *models.Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx := 0; rowIdx < g.Rows(); rowIdx++ {
		for colIdx := 0; colIdx < g.Cols(); colIdx++ {
			if g.At(rowIdx, colIdx).IsEmpty() {
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

// DataRange returns the used range in spreadsheet notation (e.g. "A1:D10"),
// or "" for an empty grid.
func DataRange(g *models.Grid) string {
	minRow, maxRow, minCol, maxCol := DataBounds(g)
	if minRow < 0 {
		return ""
	}
	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// TrimTopEmptyRows drops blank rows above the first row holding data.
// A grid with no data is returned unchanged.
func TrimTopEmptyRows(g *models.Grid) *models.Grid {
	minRow, _, _, _ := DataBounds(g)
	if minRow <= 0 {
		return g
	}
	return g.Slice(minRow, g.Rows(), 0, g.Cols())
}

// DropEmptyColumns removes columns with no data at all.
func DropEmptyColumns(g *models.Grid) *models.Grid {
	var keep []int
	for c := 0; c < g.Cols(); c++ {
		if !g.ColEmpty(c) {
			keep = append(keep, c)
		}
	}
	if len(keep) == g.Cols() {
		return g
	}
	return g.SelectCols(keep)
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(g *models.Grid, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < g.Rows(); rowIdx++ {
		for colIdx := minCol; colIdx <= maxCol && colIdx < g.Cols(); colIdx++ {
			if !g.At(rowIdx, colIdx).IsEmpty() {
				count++
			}
		}
	}
	return count
}

// Density returns the share of non-empty cells inside the used range.
func Density(g *models.Grid) float64 {
	minRow, maxRow, minCol, maxCol := DataBounds(g)
	if minRow < 0 {
		return 0
	}
	total := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	return float64(countNonEmptyCells(g, minRow, maxRow, minCol, maxCol)) / float64(total)
}
