// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/testharness.go
// Summary: Test harness for decoder and screen model control sequence tests.
// Usage: Used by test files to feed sequences and inspect screen state.

package parser

import (
	"strings"

	"oneterm/term"
)

// TestHarness couples a screen and a decoder for sequence-level tests.
type TestHarness struct {
	Screen  *term.Screen
	Decoder *Decoder
}

// NewTestHarness creates a harness with the given terminal size.
func NewTestHarness(rows, cols int, opts ...Option) *TestHarness {
	screen := term.NewScreen(rows, cols)
	return &TestHarness{
		Screen:  screen,
		Decoder: NewDecoder(screen, opts...),
	}
}

// Send feeds a string of bytes (text and/or sequences) to the decoder.
func (h *TestHarness) Send(seq string) {
	h.Decoder.Feed([]byte(seq))
}

// SendChunked feeds the string one byte per Feed call, exercising sequence
// reassembly across chunk boundaries.
func (h *TestHarness) SendChunked(seq string) {
	for i := 0; i < len(seq); i++ {
		h.Decoder.Feed([]byte{seq[i]})
	}
}

// Cell returns the cell at (row, col) of the current grid.
func (h *TestHarness) Cell(row, col int) term.Cell {
	line := h.Screen.CellsAtAbsoluteLine(h.Screen.ScrollbackLen() + row)
	if line == nil || col < 0 || col >= len(line) {
		return term.Cell{}
	}
	return line[col]
}

// RowText returns the text of one visible row with trailing spaces trimmed.
func (h *TestHarness) RowText(row int) string {
	line := h.Screen.CellsAtAbsoluteLine(h.Screen.ScrollbackLen() + row)
	var b strings.Builder
	for _, cell := range line {
		if cell.Rune != 0 {
			b.WriteRune(cell.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// ScrollbackText returns the text of one scrollback row, trimmed.
func (h *TestHarness) ScrollbackText(row int) string {
	line := h.Screen.CellsAtAbsoluteLine(row)
	var b strings.Builder
	for _, cell := range line {
		if cell.Rune != 0 {
			b.WriteRune(cell.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
