package models

import "strings"

// Grid is a rectangular 0-indexed sheet of cells. Ragged input rows are
// padded with Empty so every row has Cols() cells.
type Grid struct {
	rows [][]Cell
	cols int
}

// NewGrid builds a grid from rows of cells, padding short rows.
func NewGrid(rows [][]Cell) *Grid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	padded := make([][]Cell, len(rows))
	for i, row := range rows {
		p := make([]Cell, cols)
		copy(p, row)
		padded[i] = p
	}
	return &Grid{rows: padded, cols: cols}
}

// GridFromStrings builds a grid from raw strings using ParseCell.
func GridFromStrings(rows [][]string) *Grid {
	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]Cell, len(row))
		for j, v := range row {
			cells[i][j] = ParseCell(v)
		}
	}
	return NewGrid(cells)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.rows) }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the cell at (r, c) or Empty when outside the grid.
func (g *Grid) At(r, c int) Cell {
	if r < 0 || c < 0 || r >= len(g.rows) || c >= g.cols {
		return Empty()
	}
	return g.rows[r][c]
}

// Text returns the trimmed text of the cell at (r, c).
func (g *Grid) Text(r, c int) string {
	return strings.TrimSpace(g.At(r, c).String())
}

// RowEmpty reports whether every cell of row r is blank.
func (g *Grid) RowEmpty(r int) bool {
	for c := 0; c < g.cols; c++ {
		if !g.At(r, c).IsEmpty() {
			return false
		}
	}
	return true
}

// ColEmpty reports whether every cell of column c is blank.
func (g *Grid) ColEmpty(c int) bool {
	for r := range g.rows {
		if !g.At(r, c).IsEmpty() {
			return false
		}
	}
	return true
}

// Slice returns the sub-grid of rows [r0, r1) and columns [c0, c1).
func (g *Grid) Slice(r0, r1, c0, c1 int) *Grid {
	var rows [][]Cell
	for r := r0; r < r1; r++ {
		row := make([]Cell, 0, c1-c0)
		for c := c0; c < c1; c++ {
			row = append(row, g.At(r, c))
		}
		rows = append(rows, row)
	}
	return NewGrid(rows)
}

// SelectCols returns a grid made of the given columns, in order.
func (g *Grid) SelectCols(cols []int) *Grid {
	rows := make([][]Cell, len(g.rows))
	for r := range g.rows {
		row := make([]Cell, len(cols))
		for i, c := range cols {
			row[i] = g.At(r, c)
		}
		rows[r] = row
	}
	return NewGrid(rows)
}
