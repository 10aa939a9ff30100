// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/lines.go
// Summary: Absolute-line addressing across scrollback and the live screen.
// Usage: Read by the presentation layer and the selection code.

package term

// TotalLines returns the number of addressable lines: the scrollback rows
// followed by the visible screen rows.
func (s *Screen) TotalLines() int {
	return len(s.scrollback) + s.main.Rows()
}

// CellsAtAbsoluteLine returns the cells of one line addressed across the
// scrollback and the current screen, oldest first. Returns nil when the line
// is out of range. The returned slice is a view; callers must not modify it.
func (s *Screen) CellsAtAbsoluteLine(line int) []Cell {
	if line < 0 {
		return nil
	}
	if line < len(s.scrollback) {
		return s.scrollback[line]
	}
	offset := line - len(s.scrollback)
	if offset < s.currentBuffer().Rows() {
		return s.currentBuffer().Row(offset)
	}
	return nil
}

// CursorAbsoluteLine returns the cursor row translated to an absolute line.
func (s *Screen) CursorAbsoluteLine() int {
	return len(s.scrollback) + s.cursorRow
}

// clampLineCol clamps an absolute line and column to the addressable range.
func (s *Screen) clampLineCol(line, col int) (int, int) {
	line = clamp(line, 0, s.TotalLines()-1)
	col = clamp(col, 0, s.currentBuffer().Cols()-1)
	return line, col
}
