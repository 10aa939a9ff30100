// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/colors_test.go
// Summary: Tests for palette index to RGB mapping.

package term

import "testing"

func TestColorForIndexBasic(t *testing.T) {
	tests := []struct {
		idx     int
		r, g, b uint8
	}{
		{0, 0x00, 0x00, 0x00},
		{1, 0xcd, 0x00, 0x00},
		{7, 0xe5, 0xe5, 0xe5},
		{9, 0xff, 0x00, 0x00},
		{15, 0xff, 0xff, 0xff},
	}
	for _, tt := range tests {
		r, g, b := ColorForIndex(tt.idx, false).RGB255()
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("index %d = #%02x%02x%02x, want #%02x%02x%02x",
				tt.idx, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorForIndexCube(t *testing.T) {
	tests := []struct {
		idx     int
		r, g, b uint8
	}{
		{16, 0, 0, 0},        // cube origin
		{21, 0, 0, 255},      // full blue: level 5 = 55+200
		{196, 255, 0, 0},     // full red
		{46, 0, 255, 0},      // full green
		{231, 255, 255, 255}, // cube white
		{17, 0, 0, 95},       // level 1 = 55+40
	}
	for _, tt := range tests {
		r, g, b := ColorForIndex(tt.idx, false).RGB255()
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("index %d = #%02x%02x%02x, want #%02x%02x%02x",
				tt.idx, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorForIndexGrayscale(t *testing.T) {
	r, g, b := ColorForIndex(232, false).RGB255()
	if r != 8 || g != 8 || b != 8 {
		t.Errorf("index 232 = (%d,%d,%d), want (8,8,8)", r, g, b)
	}
	r, g, b = ColorForIndex(255, false).RGB255()
	if r != 238 || g != 238 || b != 238 {
		t.Errorf("index 255 = (%d,%d,%d), want (238,238,238)", r, g, b)
	}
}

// Bold brightens the eight base colors but leaves the bright set alone.
func TestBoldBrightening(t *testing.T) {
	plain := ColorForIndex(1, false)
	bold := ColorForIndex(1, true)
	if plain == bold {
		t.Error("bold red should differ from plain red")
	}

	pr, _, _ := plain.RGB255()
	br, _, _ := bold.RGB255()
	if br < pr {
		t.Errorf("bold red got darker: %d -> %d", pr, br)
	}

	if ColorForIndex(9, false) != ColorForIndex(9, true) {
		t.Error("bright colors must not change under bold")
	}
}

func TestColorForIndexOutOfRange(t *testing.T) {
	if ColorForIndex(-5, false) != basicPalette[0] {
		t.Error("negative index should map to black")
	}
	if ColorForIndex(300, false) != basicPalette[15] {
		t.Error("index past 255 should map to white")
	}
}
