// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/cell.go
// Summary: Cell value type - one grid position with character, colors and style.
// Usage: Part of the terminal screen model.

package term

// Attribute is a bitmask of text style flags carried by a Cell.
type Attribute uint8

const (
	AttrBold Attribute = 1 << iota
	AttrUnderline
	AttrInverse
	AttrBlink
)

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	if a&AttrBold != 0 {
		parts = append(parts, "bold")
	}
	if a&AttrUnderline != 0 {
		parts = append(parts, "underline")
	}
	if a&AttrInverse != 0 {
		parts = append(parts, "inverse")
	}
	if a&AttrBlink != 0 {
		parts = append(parts, "blink")
	}
	result := parts[0]
	for i := 1; i < len(parts); i++ {
		result += "|" + parts[i]
	}
	return result
}

// Default color indexes. Index 7 is the standard light-gray foreground,
// index 0 the black background.
const (
	DefaultFG = 7
	DefaultBG = 0
)

// Cell represents a single character cell on the screen. FG and BG are
// 256-color palette indexes. Cells are plain values and may be copied freely.
type Cell struct {
	Rune rune
	FG   int
	BG   int
	Attr Attribute
}

// BlankCell returns an empty cell with the default attributes.
func BlankCell() Cell {
	return Cell{Rune: ' ', FG: DefaultFG, BG: DefaultBG}
}
