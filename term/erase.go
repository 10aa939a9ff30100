// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/erase.go
// Summary: Erase and character/line edit operations.
// Usage: Part of the terminal screen model.
// Notes: All fills carry the current attributes, matching xterm erase rules.

package term

// EraseInLine erases part of the cursor row. Mode 0 erases from the cursor
// to the end, mode 1 from the start through the cursor, mode 2 (or any other
// value) the whole line.
func (s *Screen) EraseInLine(mode int) {
	buf := s.currentBuffer()
	var start, end int
	switch mode {
	case 0:
		start, end = s.cursorCol, buf.Cols()
	case 1:
		start, end = 0, s.cursorCol+1
	default:
		start, end = 0, buf.Cols()
	}
	buf.FillRow(s.cursorRow, start, end, s.blankCell())
}

// EraseInDisplay erases part of the screen. Mode 0 erases from the cursor to
// the end of the screen, mode 1 from the start through the cursor, mode 2
// the whole screen.
func (s *Screen) EraseInDisplay(mode int) {
	buf := s.currentBuffer()
	blank := s.blankCell()
	switch mode {
	case 0:
		s.EraseInLine(0)
		for r := s.cursorRow + 1; r < buf.Rows(); r++ {
			buf.FillRow(r, 0, buf.Cols(), blank)
		}
	case 1:
		s.EraseInLine(1)
		for r := 0; r < s.cursorRow; r++ {
			buf.FillRow(r, 0, buf.Cols(), blank)
		}
	case 2:
		buf.Fill(blank)
	}
}

// InsertChars inserts n blank cells at the cursor, shifting the rest of the
// row right. Cells pushed past the right edge are lost.
func (s *Screen) InsertChars(n int) {
	buf := s.currentBuffer()
	if n < 1 {
		return
	}
	row := buf.Row(s.cursorRow)
	blank := s.blankCell()
	for i := 0; i < n; i++ {
		for c := buf.Cols() - 1; c > s.cursorCol; c-- {
			row[c] = row[c-1]
		}
		row[s.cursorCol] = blank
	}
}

// DeleteChars deletes n cells at the cursor, shifting the rest of the row
// left and blank-filling the tail.
func (s *Screen) DeleteChars(n int) {
	buf := s.currentBuffer()
	if n < 1 {
		return
	}
	row := buf.Row(s.cursorRow)
	blank := s.blankCell()
	for i := 0; i < n; i++ {
		for c := s.cursorCol; c < buf.Cols()-1; c++ {
			row[c] = row[c+1]
		}
		row[buf.Cols()-1] = blank
	}
}

// EraseChars blanks n cells starting at the cursor without shifting.
func (s *Screen) EraseChars(n int) {
	buf := s.currentBuffer()
	if n < 1 {
		return
	}
	end := clamp(s.cursorCol+n, 0, buf.Cols())
	buf.FillRow(s.cursorRow, s.cursorCol, end, s.blankCell())
}

// InsertLines inserts n blank lines at the cursor row, shifting lines below
// it down within the scrolling region. A no-op outside the region.
func (s *Screen) InsertLines(n int) {
	if s.cursorRow < s.regionTop || s.cursorRow > s.regionBottom {
		return
	}
	for i := 0; i < n; i++ {
		s.ScrollDown(s.cursorRow, s.regionBottom)
	}
}

// DeleteLines deletes n lines at the cursor row, shifting lines below it up
// within the scrolling region. Never feeds scrollback.
func (s *Screen) DeleteLines(n int) {
	if s.cursorRow < s.regionTop || s.cursorRow > s.regionBottom {
		return
	}
	for i := 0; i < n; i++ {
		s.scrollUp(s.cursorRow, s.regionBottom, false)
	}
}
