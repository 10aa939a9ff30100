// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/buffer.go
// Summary: ScreenBuffer - a rectangular, row-major grid of cells.
// Usage: Two instances per Screen (primary and alternate).
// Notes: The backing slice always holds exactly rows*cols cells.

package term

// ScreenBuffer is a fixed-size rectangular grid of cells stored row-major.
// Dimensions are always at least 1x1.
type ScreenBuffer struct {
	rows, cols int
	cells      []Cell
}

// NewScreenBuffer creates a buffer of the given size filled with blank cells.
func NewScreenBuffer(rows, cols int) *ScreenBuffer {
	b := &ScreenBuffer{}
	b.Resize(rows, cols, BlankCell())
	return b
}

// Rows returns the number of rows.
func (b *ScreenBuffer) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *ScreenBuffer) Cols() int { return b.cols }

// Cell returns the cell at (r, c). Out-of-range access returns a blank cell.
func (b *ScreenBuffer) Cell(r, c int) Cell {
	if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
		return BlankCell()
	}
	return b.cells[r*b.cols+c]
}

// SetCell stores a cell at (r, c). Out-of-range writes are dropped.
func (b *ScreenBuffer) SetCell(r, c int, cell Cell) {
	if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
		return
	}
	b.cells[r*b.cols+c] = cell
}

// Row returns the backing slice for one row. Callers must not hold the
// slice across a Resize.
func (b *ScreenBuffer) Row(r int) []Cell {
	if r < 0 || r >= b.rows {
		return nil
	}
	return b.cells[r*b.cols : (r+1)*b.cols]
}

// FillRow fills columns [c0, c1) of row r with the given cell.
func (b *ScreenBuffer) FillRow(r, c0, c1 int, cell Cell) {
	if r < 0 || r >= b.rows {
		return
	}
	c0 = clamp(c0, 0, b.cols)
	c1 = clamp(c1, 0, b.cols)
	row := b.Row(r)
	for c := c0; c < c1; c++ {
		row[c] = cell
	}
}

// Fill fills the whole grid with the given cell.
func (b *ScreenBuffer) Fill(cell Cell) {
	for i := range b.cells {
		b.cells[i] = cell
	}
}

// Resize reallocates the grid to rows x cols, resetting every cell to blank.
// Content preservation across resizes is the Screen's job, not the buffer's.
func (b *ScreenBuffer) Resize(rows, cols int, blank Cell) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	b.rows = rows
	b.cols = cols
	b.cells = make([]Cell, rows*cols)
	for i := range b.cells {
		b.cells[i] = blank
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
