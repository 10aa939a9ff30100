// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/sgr.go
// Summary: SGR (Select Graphic Rendition) - text attributes and colors.
// Usage: Part of the terminal screen model.

package term

// SetSGR applies a list of SGR parameters left to right. Unknown codes are
// skipped without altering state.
func (s *Screen) SetSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			s.ResetAttributes()
		case p == 1:
			s.SetAttribute(AttrBold)
		case p == 4:
			s.SetAttribute(AttrUnderline)
		case p == 5:
			s.SetAttribute(AttrBlink)
		case p == 7:
			s.SetAttribute(AttrInverse)
		case p == 22:
			s.ClearAttribute(AttrBold)
		case p == 24:
			s.ClearAttribute(AttrUnderline)
		case p == 25:
			s.ClearAttribute(AttrBlink)
		case p == 27:
			s.ClearAttribute(AttrInverse)
		case p >= 30 && p <= 37:
			s.curFG = p - 30
		case p == 39:
			s.curFG = DefaultFG
		case p >= 40 && p <= 47:
			s.curBG = p - 40
		case p == 49:
			s.curBG = DefaultBG
		case p >= 90 && p <= 97:
			s.curFG = p - 90 + 8
		case p >= 100 && p <= 107:
			s.curBG = p - 100 + 8
		case p == 38: // extended foreground: 38;5;N
			if i+2 < len(params) && params[i+1] == 5 {
				s.curFG = clamp(params[i+2], 0, 255)
				i += 2
			}
		case p == 48: // extended background: 48;5;N
			if i+2 < len(params) && params[i+1] == 5 {
				s.curBG = clamp(params[i+2], 0, 255)
				i += 2
			}
		}
		i++
	}
}

// SetAttribute sets a style flag on the current attribute state.
func (s *Screen) SetAttribute(a Attribute) { s.curAttr |= a }

// ClearAttribute clears a style flag on the current attribute state.
func (s *Screen) ClearAttribute(a Attribute) { s.curAttr &^= a }

// ResetAttributes restores the default foreground, background and style.
func (s *Screen) ResetAttributes() {
	s.curFG = DefaultFG
	s.curBG = DefaultBG
	s.curAttr = 0
}

// Attributes returns the current foreground, background and style state.
func (s *Screen) Attributes() (fg, bg int, attr Attribute) {
	return s.curFG, s.curBG, s.curAttr
}
