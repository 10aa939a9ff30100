// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/selection.go
// Summary: Rectangle selection over absolute lines and text extraction.
// Usage: Driven by the presentation layer's mouse handling.

package term

import (
	"strings"
	"unicode"
)

// selection tracks an anchor/active pair in absolute-line coordinates.
type selection struct {
	anchorLine, anchorCol int
	activeLine, activeCol int
	selecting             bool
	has                   bool
}

// StartSelection begins a new selection at the given absolute position.
func (s *Screen) StartSelection(line, col int) {
	line, col = s.clampLineCol(line, col)
	s.sel = selection{
		anchorLine: line, anchorCol: col,
		activeLine: line, activeCol: col,
		selecting: true,
	}
}

// ExtendSelection moves the active end of an in-progress selection.
func (s *Screen) ExtendSelection(line, col int) {
	if !s.sel.selecting {
		return
	}
	s.sel.activeLine, s.sel.activeCol = s.clampLineCol(line, col)
}

// FinishSelection ends the drag and marks the selection usable.
func (s *Screen) FinishSelection() {
	if !s.sel.selecting {
		return
	}
	s.sel.selecting = false
	s.sel.has = true
}

// SelectWordAt selects the whitespace-delimited word at the given position.
func (s *Screen) SelectWordAt(line, col int) {
	line, col = s.clampLineCol(line, col)
	cells := s.CellsAtAbsoluteLine(line)
	if cells == nil {
		return
	}
	isSpace := func(c Cell) bool {
		return c.Rune == 0 || unicode.IsSpace(c.Rune)
	}
	start := col
	for start > 0 && !isSpace(cells[start-1]) {
		start--
	}
	end := col
	for end < len(cells)-1 && !isSpace(cells[end+1]) {
		end++
	}
	s.sel = selection{
		anchorLine: line, anchorCol: start,
		activeLine: line, activeCol: end,
		has: true,
	}
}

// ClearSelection drops any selection.
func (s *Screen) ClearSelection() {
	s.sel = selection{}
}

// HasSelection reports whether a non-degenerate selection exists.
func (s *Screen) HasSelection() bool {
	if !s.sel.has {
		return false
	}
	return s.sel.anchorLine != s.sel.activeLine || s.sel.anchorCol != s.sel.activeCol
}

// SelectionContains reports whether (line, col) falls inside the selection
// rectangle, honoring the boundary columns on the first and last line.
func (s *Screen) SelectionContains(line, col int) bool {
	if !s.sel.has && !s.sel.selecting {
		return false
	}
	startLine, startCol, endLine, endCol := s.selectionBounds()
	if line < startLine || line > endLine {
		return false
	}
	lo, hi := 0, s.currentBuffer().Cols()-1
	if line == startLine {
		lo = startCol
	}
	if line == endLine {
		hi = endCol
	}
	return col >= lo && col <= hi
}

// SelectedText returns the selection contents, one line per absolute line,
// newline-joined, with the first and last line trimmed to the selection's
// boundary columns.
func (s *Screen) SelectedText() string {
	if !s.HasSelection() {
		return ""
	}
	startLine, startCol, endLine, endCol := s.selectionBounds()

	var lines []string
	for line := startLine; line <= endLine; line++ {
		cells := s.CellsAtAbsoluteLine(line)
		if cells == nil {
			continue
		}
		lo, hi := 0, len(cells)-1
		if line == startLine {
			lo = startCol
		}
		if line == endLine {
			hi = endCol
		}
		lo = clamp(lo, 0, len(cells)-1)
		hi = clamp(hi, 0, len(cells)-1)

		var b strings.Builder
		for c := lo; c <= hi; c++ {
			if cells[c].Rune != 0 {
				b.WriteRune(cells[c].Rune)
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// selectionBounds normalizes the anchor/active pair into a top-to-bottom
// (startLine, startCol, endLine, endCol) ordering.
func (s *Screen) selectionBounds() (startLine, startCol, endLine, endCol int) {
	sel := s.sel
	if sel.anchorLine > sel.activeLine ||
		(sel.anchorLine == sel.activeLine && sel.anchorCol > sel.activeCol) {
		return sel.activeLine, sel.activeCol, sel.anchorLine, sel.anchorCol
	}
	return sel.anchorLine, sel.anchorCol, sel.activeLine, sel.activeCol
}
