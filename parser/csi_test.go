// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/csi_test.go
// Summary: Tests for CSI sequence dispatch against xterm behavior.

package parser

import (
	"testing"

	"oneterm/term"
)

func TestCursorMovementSequences(t *testing.T) {
	tests := []struct {
		name     string
		setup    string
		sequence string
		wantRow  int
		wantCol  int
	}{
		{"CUU default", "\x1b[10;10H", "\x1b[A", 8, 9},
		{"CUU explicit", "\x1b[10;10H", "\x1b[5A", 4, 9},
		{"CUU zero means one", "\x1b[10;10H", "\x1b[0A", 8, 9},
		{"CUD", "\x1b[10;10H", "\x1b[3B", 12, 9},
		{"CUF", "\x1b[10;10H", "\x1b[4C", 9, 13},
		{"CUB", "\x1b[10;10H", "\x1b[4D", 9, 5},
		{"CNL moves down to column 0", "\x1b[10;10H", "\x1b[2E", 11, 0},
		{"CPL moves up to column 0", "\x1b[10;10H", "\x1b[2F", 7, 0},
		{"CHA absolute column", "\x1b[10;10H", "\x1b[30G", 9, 29},
		{"VPA absolute row", "\x1b[10;10H", "\x1b[20d", 19, 9},
		{"CUP", "", "\x1b[5;7H", 4, 6},
		{"CUP no params homes", "\x1b[10;10H", "\x1b[H", 0, 0},
		{"HVP is CUP", "", "\x1b[5;7f", 4, 6},
		{"CUP clamps", "", "\x1b[99;199H", 23, 79},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness(24, 80)
			h.Send(tt.setup + tt.sequence)
			if r, c := h.Screen.Cursor(); r != tt.wantRow || c != tt.wantCol {
				t.Errorf("cursor = (%d,%d), want (%d,%d)", r, c, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestEraseSequences(t *testing.T) {
	t.Run("ED 2 then CUP then write", func(t *testing.T) {
		h := NewTestHarness(24, 80)
		h.Send("garbage\x1b[2J\x1b[5;10HX")
		if got := h.RowText(0); got != "" {
			t.Errorf("row 0 = %q after clear, want blank", got)
		}
		if c := h.Cell(4, 9); c.Rune != 'X' {
			t.Errorf("cell (4,9) = %q, want X", c.Rune)
		}
	})

	t.Run("EL to end of line", func(t *testing.T) {
		h := NewTestHarness(24, 80)
		h.Send("abcdef\x1b[4G\x1b[K")
		if got := h.RowText(0); got != "abc" {
			t.Errorf("row 0 = %q, want %q", got, "abc")
		}
	})

	t.Run("EL from start", func(t *testing.T) {
		h := NewTestHarness(24, 80)
		h.Send("abcdef\x1b[3G\x1b[1K")
		if c := h.Cell(0, 2); c.Rune != ' ' {
			t.Errorf("cell (0,2) = %q, want erased", c.Rune)
		}
		if c := h.Cell(0, 3); c.Rune != 'd' {
			t.Errorf("cell (0,3) = %q, want d", c.Rune)
		}
	})
}

func TestEditSequences(t *testing.T) {
	t.Run("ICH", func(t *testing.T) {
		h := NewTestHarness(4, 8)
		h.Send("abcdefgh\x1b[1;3H\x1b[2@")
		if got := h.RowText(0); got != "ab  cdef" {
			t.Errorf("row = %q, want %q", got, "ab  cdef")
		}
	})

	t.Run("DCH", func(t *testing.T) {
		h := NewTestHarness(4, 8)
		h.Send("abcdefgh\x1b[1;3H\x1b[2P")
		if got := h.RowText(0); got != "abefgh" {
			t.Errorf("row = %q, want %q", got, "abefgh")
		}
	})

	t.Run("ECH", func(t *testing.T) {
		h := NewTestHarness(4, 8)
		h.Send("abcdefgh\x1b[1;3H\x1b[2X")
		if got := h.RowText(0); got != "ab  efgh" {
			t.Errorf("row = %q, want %q", got, "ab  efgh")
		}
	})

	t.Run("IL and DL", func(t *testing.T) {
		h := NewTestHarness(4, 10)
		h.Send("one\r\ntwo\r\nthree")
		h.Send("\x1b[2;1H\x1b[L")
		if got := h.RowText(2); got != "two" {
			t.Errorf("row 2 = %q after IL, want %q", got, "two")
		}
		h.Send("\x1b[2;1H\x1b[M")
		if got := h.RowText(1); got != "two" {
			t.Errorf("row 1 = %q after DL, want %q", got, "two")
		}
	})
}

func TestScrollingRegionSequences(t *testing.T) {
	t.Run("DECSTBM bounds scrolling", func(t *testing.T) {
		h := NewTestHarness(10, 20)
		h.Send("\x1b[3;6r")
		top, bottom := h.Screen.ScrollingRegion()
		if top != 2 || bottom != 5 {
			t.Fatalf("region = [%d,%d], want [2,5]", top, bottom)
		}
	})

	t.Run("DECSTBM default is full screen", func(t *testing.T) {
		h := NewTestHarness(10, 20)
		h.Send("\x1b[3;6r\x1b[r")
		top, bottom := h.Screen.ScrollingRegion()
		if top != 0 || bottom != 9 {
			t.Errorf("region = [%d,%d], want [0,9]", top, bottom)
		}
	})

	t.Run("inverted params are swapped", func(t *testing.T) {
		h := NewTestHarness(10, 20)
		h.Send("\x1b[6;3r")
		top, bottom := h.Screen.ScrollingRegion()
		if top != 2 || bottom != 5 {
			t.Errorf("region = [%d,%d], want [2,5]", top, bottom)
		}
	})

	t.Run("SU scrolls region up", func(t *testing.T) {
		h := NewTestHarness(4, 10)
		h.Send("one\r\ntwo\r\nthree\r\nfour\x1b[2S")
		if got := h.RowText(0); got != "three" {
			t.Errorf("row 0 = %q after SU 2, want %q", got, "three")
		}
	})

	t.Run("SD scrolls region down", func(t *testing.T) {
		h := NewTestHarness(4, 10)
		h.Send("one\r\ntwo\x1b[T")
		if got := h.RowText(1); got != "one" {
			t.Errorf("row 1 = %q after SD, want %q", got, "one")
		}
	})
}

func TestSaveRestoreSequences(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Send("\x1b[12;34H\x1b[s\x1b[H\x1b[u")
	if r, c := h.Screen.Cursor(); r != 11 || c != 33 {
		t.Errorf("cursor = (%d,%d) after CSI u, want (11,33)", r, c)
	}
}

func TestSGRSequences(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Send("\x1b[1;31mred\x1b[0mplain")

	if c := h.Cell(0, 0); c.FG != 1 || c.Attr&term.AttrBold == 0 {
		t.Errorf("cell (0,0) = %+v, want bold red", c)
	}
	if c := h.Cell(0, 3); c.FG != term.DefaultFG || c.Attr != 0 {
		t.Errorf("cell (0,3) = %+v, want default attrs", c)
	}
}

func TestSGR256Color(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Send("\x1b[38;5;208m\x1b[48;5;17mX")

	if c := h.Cell(0, 0); c.FG != 208 || c.BG != 17 {
		t.Errorf("cell = fg %d bg %d, want fg 208 bg 17", c.FG, c.BG)
	}
}

func TestPrivateModes(t *testing.T) {
	h := NewTestHarness(24, 80)

	h.Send("\x1b[?25l")
	if h.Screen.CursorVisible() {
		t.Error("cursor still visible after ?25l")
	}
	h.Send("\x1b[?25h")
	if !h.Screen.CursorVisible() {
		t.Error("cursor hidden after ?25h")
	}

	h.Send("\x1b[?1000h")
	if !h.Screen.MouseEnabled() {
		t.Error("mouse reporting off after ?1000h")
	}

	h.Send("\x1b[?2004h")
	if !h.Screen.BracketedPaste() {
		t.Error("bracketed paste off after ?2004h")
	}

	h.Send("\x1b[?1049h")
	if !h.Screen.InAlternateScreen() {
		t.Error("not in alt screen after ?1049h")
	}
	h.Send("\x1b[?1049l")
	if h.Screen.InAlternateScreen() {
		t.Error("still in alt screen after ?1049l")
	}
}

func TestAlternateScreenPreservesPrimary(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Send("shell prompt\x1b[?1049h")
	h.Send("\x1b[2Jfullscreen app")
	h.Send("\x1b[?1049l")

	if got := h.RowText(0); got != "shell prompt" {
		t.Errorf("row 0 = %q after alt round trip, want %q", got, "shell prompt")
	}
}

func TestDeviceStatusReport(t *testing.T) {
	var reply []byte
	h := NewTestHarness(24, 80, WithResponder(func(b []byte) {
		reply = append(reply, b...)
	}))
	h.Send("\x1b[8;15H\x1b[6n")

	if got := string(reply); got != "\x1b[8;15R" {
		t.Errorf("DSR reply = %q, want %q", got, "\x1b[8;15R")
	}
}

func TestMalformedCSIRecovery(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want string
	}{
		{"param overflow falls to ignore", "\x1b[" + longParams() + "mok", "ok"},
		{"private marker mid-params", "\x1b[3;?5hok", "ok"},
		{"param after intermediate", "\x1b[1 2mok", "ok"},
		{"stray final recovers", "\x1b[;;;;Hok", "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness(24, 80)
			h.Send(tt.seq)
			found := false
			for row := 0; row < 24; row++ {
				if h.RowText(row) == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("text %q not found after malformed sequence %q", tt.want, tt.seq)
			}
		})
	}
}

func longParams() string {
	s := ""
	for i := 0; i < 300; i++ {
		s += "1;"
	}
	return s
}

func TestZeroAndMissingParamsDefault(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Send("\x1b[5;5H\x1b[;H")
	if r, c := h.Screen.Cursor(); r != 0 || c != 0 {
		t.Errorf("cursor = (%d,%d) after CSI ;H, want (0,0)", r, c)
	}
}
