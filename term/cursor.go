// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/cursor.go
// Summary: Cursor movement, save/restore and the simple control characters.
// Usage: Part of the terminal screen model.

package term

// Cursor returns the cursor position within the current grid.
func (s *Screen) Cursor() (row, col int) {
	return s.cursorRow, s.cursorCol
}

// SetCursorPos moves the cursor to (row, col), clamped to the grid.
func (s *Screen) SetCursorPos(row, col int) {
	s.wrapPending = false
	s.cursorRow = clamp(row, 0, s.main.Rows()-1)
	s.cursorCol = clamp(col, 0, s.main.Cols()-1)
}

// SetCursorRow moves the cursor to an absolute row, keeping the column.
func (s *Screen) SetCursorRow(row int) {
	s.wrapPending = false
	s.cursorRow = clamp(row, 0, s.main.Rows()-1)
}

// SetCursorColumn moves the cursor to an absolute column, keeping the row.
func (s *Screen) SetCursorColumn(col int) {
	s.wrapPending = false
	s.cursorCol = clamp(col, 0, s.main.Cols()-1)
}

// MoveCursorUp moves the cursor n rows up.
func (s *Screen) MoveCursorUp(n int) {
	s.SetCursorRow(s.cursorRow - n)
}

// MoveCursorDown moves the cursor n rows down.
func (s *Screen) MoveCursorDown(n int) {
	s.SetCursorRow(s.cursorRow + n)
}

// MoveCursorForward moves the cursor n columns right.
func (s *Screen) MoveCursorForward(n int) {
	s.SetCursorColumn(s.cursorCol + n)
}

// MoveCursorBackward moves the cursor n columns left.
func (s *Screen) MoveCursorBackward(n int) {
	s.SetCursorColumn(s.cursorCol - n)
}

// SaveCursor records the cursor position for a later RestoreCursor. The
// shadow copy is taken verbatim; clamping happens on restore.
func (s *Screen) SaveCursor() {
	s.savedRow, s.savedCol = s.cursorRow, s.cursorCol
}

// RestoreCursor moves the cursor back to the saved position, clamped to the
// current grid bounds.
func (s *Screen) RestoreCursor() {
	s.SetCursorPos(s.savedRow, s.savedCol)
}

// CarriageReturn moves the cursor to column 0.
func (s *Screen) CarriageReturn() {
	s.wrapPending = false
	s.cursorCol = 0
}

// Backspace moves the cursor one column left, stopping at the margin.
func (s *Screen) Backspace() {
	s.wrapPending = false
	if s.cursorCol > 0 {
		s.cursorCol--
	}
}

// Tab advances the cursor to the next multiple-of-8 tab stop.
func (s *Screen) Tab() {
	s.wrapPending = false
	next := s.cursorCol + (8 - s.cursorCol%8)
	s.cursorCol = clamp(next, 0, s.main.Cols()-1)
}

func (s *Screen) clampCursor() {
	s.cursorRow = clamp(s.cursorRow, 0, s.main.Rows()-1)
	s.cursorCol = clamp(s.cursorCol, 0, s.main.Cols()-1)
}
