// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/erase_test.go
// Summary: Tests for erase and character/line editing operations.

package term

import "testing"

func TestEraseInLine(t *testing.T) {
	tests := []struct {
		name string
		mode int
		want string
	}{
		{"cursor to end", 0, "abcde"},
		{"start through cursor", 1, "ghij"},
		{"whole line", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(4, 10)
			putString(s, "abcdefghij")
			s.SetCursorPos(0, 5)
			s.EraseInLine(tt.mode)

			var got string
			for c := 0; c < 10; c++ {
				cell := s.currentBuffer().Cell(0, c)
				if cell.Rune != ' ' && cell.Rune != 0 {
					got += string(cell.Rune)
				}
			}
			if got != tt.want {
				t.Errorf("mode %d: row = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestEraseInDisplay(t *testing.T) {
	fill := func() *Screen {
		s := NewScreen(3, 5)
		for r := 0; r < 3; r++ {
			s.SetCursorPos(r, 0)
			putString(s, "xxxxx")
		}
		s.SetCursorPos(1, 2)
		return s
	}

	t.Run("cursor to end of screen", func(t *testing.T) {
		s := fill()
		s.EraseInDisplay(0)
		if got := rowText(s, 0); got != "xxxxx" {
			t.Errorf("row 0 = %q, want untouched", got)
		}
		if got := rowText(s, 1); got != "xx" {
			t.Errorf("row 1 = %q, want %q", got, "xx")
		}
		if got := rowText(s, 2); got != "" {
			t.Errorf("row 2 = %q, want blank", got)
		}
	})

	t.Run("start through cursor", func(t *testing.T) {
		s := fill()
		s.EraseInDisplay(1)
		if got := rowText(s, 0); got != "" {
			t.Errorf("row 0 = %q, want blank", got)
		}
		if got := rowText(s, 2); got != "xxxxx" {
			t.Errorf("row 2 = %q, want untouched", got)
		}
		if c := s.currentBuffer().Cell(1, 2); c.Rune != ' ' {
			t.Errorf("cursor cell not erased: %q", c.Rune)
		}
		if c := s.currentBuffer().Cell(1, 3); c.Rune != 'x' {
			t.Errorf("cell after cursor erased: %q", c.Rune)
		}
	})

	t.Run("whole screen", func(t *testing.T) {
		s := fill()
		s.EraseInDisplay(2)
		for r := 0; r < 3; r++ {
			if got := rowText(s, r); got != "" {
				t.Errorf("row %d = %q, want blank", r, got)
			}
		}
	})
}

// Erases paint with the live background, the xterm "back color erase" rule.
func TestEraseUsesCurrentAttributes(t *testing.T) {
	s := NewScreen(4, 10)
	putString(s, "text")
	s.SetSGR([]int{44}) // blue background
	s.SetCursorPos(0, 0)
	s.EraseInLine(2)

	if c := s.currentBuffer().Cell(0, 0); c.BG != 4 {
		t.Errorf("erased cell bg = %d, want 4 (blue)", c.BG)
	}
}

func TestInsertChars(t *testing.T) {
	s := NewScreen(4, 8)
	putString(s, "abcdefgh")
	s.SetCursorPos(0, 2)
	s.InsertChars(3)

	if got := rowText(s, 0); got != "ab   cde" {
		t.Errorf("row = %q, want %q", got, "ab   cde")
	}
}

func TestDeleteChars(t *testing.T) {
	s := NewScreen(4, 8)
	putString(s, "abcdefgh")
	s.SetCursorPos(0, 2)
	s.DeleteChars(3)

	if got := rowText(s, 0); got != "abfgh" {
		t.Errorf("row = %q, want %q", got, "abfgh")
	}
}

func TestEraseChars(t *testing.T) {
	s := NewScreen(4, 8)
	putString(s, "abcdefgh")
	s.SetCursorPos(0, 2)
	s.EraseChars(3)

	if got := rowText(s, 0); got != "ab   fgh" {
		t.Errorf("row = %q, want %q", got, "ab   fgh")
	}
}

func TestEraseCharsPastRightEdge(t *testing.T) {
	s := NewScreen(4, 8)
	putString(s, "abcdefgh")
	s.SetCursorPos(0, 6)
	s.EraseChars(100)

	if got := rowText(s, 0); got != "abcdef" {
		t.Errorf("row = %q, want %q", got, "abcdef")
	}
}

func TestInsertLines(t *testing.T) {
	s := NewScreen(4, 10)
	for r, text := range []string{"one", "two", "three", "four"} {
		s.SetCursorPos(r, 0)
		putString(s, text)
	}
	s.SetCursorPos(1, 0)
	s.InsertLines(1)

	want := []string{"one", "", "two", "three"}
	for r, w := range want {
		if got := rowText(s, r); got != w {
			t.Errorf("row %d = %q, want %q", r, got, w)
		}
	}
}

func TestDeleteLines(t *testing.T) {
	s := NewScreen(4, 10)
	for r, text := range []string{"one", "two", "three", "four"} {
		s.SetCursorPos(r, 0)
		putString(s, text)
	}
	s.SetCursorPos(1, 0)
	s.DeleteLines(2)

	want := []string{"one", "four", "", ""}
	for r, w := range want {
		if got := rowText(s, r); got != w {
			t.Errorf("row %d = %q, want %q", r, got, w)
		}
	}
	if s.ScrollbackLen() != 0 {
		t.Error("DeleteLines fed scrollback")
	}
}

func TestInsertLinesOutsideRegionIsNoop(t *testing.T) {
	s := NewScreen(6, 10)
	putString(s, "keep")
	s.SetScrollingRegion(2, 4)
	s.SetCursorPos(0, 0)
	s.InsertLines(2)

	if got := rowText(s, 0); got != "keep" {
		t.Errorf("row 0 = %q, IL outside region must not move lines", got)
	}
}
