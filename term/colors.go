// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/colors.go
// Summary: 256-color palette index to RGB mapping.
// Usage: Consumed by the presentation layer when styling cells.

package term

import (
	"github.com/lucasb-eyer/go-colorful"
)

// The 16 basic ANSI colors, xterm values.
var basicPalette = [16]colorful.Color{
	rgb(0x00, 0x00, 0x00), // black
	rgb(0xcd, 0x00, 0x00), // red
	rgb(0x00, 0xcd, 0x00), // green
	rgb(0xcd, 0xcd, 0x00), // yellow
	rgb(0x00, 0x00, 0xee), // blue
	rgb(0xcd, 0x00, 0xcd), // magenta
	rgb(0x00, 0xcd, 0xcd), // cyan
	rgb(0xe5, 0xe5, 0xe5), // light gray
	rgb(0x7f, 0x7f, 0x7f), // dark gray
	rgb(0xff, 0x00, 0x00), // bright red
	rgb(0x00, 0xff, 0x00), // bright green
	rgb(0xff, 0xff, 0x00), // bright yellow
	rgb(0x5c, 0x5c, 0xff), // bright blue
	rgb(0xff, 0x00, 0xff), // bright magenta
	rgb(0x00, 0xff, 0xff), // bright cyan
	rgb(0xff, 0xff, 0xff), // white
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ColorForIndex maps a palette index to an RGB color: 0-15 basic ANSI,
// 16-231 the 6x6x6 cube, 232-255 the grayscale ramp. Bold brightens the
// eight base colors the way classic terminals render bold text.
func ColorForIndex(idx int, bold bool) colorful.Color {
	switch {
	case idx < 0:
		return basicPalette[0]
	case idx < 16:
		c := basicPalette[idx]
		if bold && idx < 8 {
			return lighten(c, 0.3)
		}
		return c
	case idx < 232:
		offset := idx - 16
		level := func(v int) uint8 {
			if v == 0 {
				return 0
			}
			return uint8(55 + v*40)
		}
		return rgb(level(offset/36), level((offset%36)/6), level(offset%6))
	case idx < 256:
		gray := uint8(8 + (idx-232)*10)
		return rgb(gray, gray, gray)
	default:
		return basicPalette[15]
	}
}

// lighten raises a color's luminance by the given fraction in HCL space,
// which keeps hue stable where naive RGB scaling drifts.
func lighten(c colorful.Color, amount float64) colorful.Color {
	h, cc, l := c.Hcl()
	l += amount * (1 - l)
	return colorful.Hcl(h, cc, l).Clamped()
}
