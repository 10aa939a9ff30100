// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/scroll.go
// Summary: Line feeds, the scrolling region and the bounded scrollback.
// Usage: Part of the terminal screen model.
// Notes: Only full-area scrolls on the primary screen feed the scrollback.

package term

// LineFeed advances the cursor one row. At the bottom of the scrolling
// region the region scrolls up instead; below the region the cursor stops
// at the last row.
func (s *Screen) LineFeed() {
	s.wrapPending = false
	if s.cursorRow == s.regionBottom {
		s.ScrollUp(s.regionTop, s.regionBottom)
	} else if s.cursorRow < s.main.Rows()-1 {
		s.cursorRow++
	}
}

// ReverseLineFeed retreats the cursor one row. At the top of the scrolling
// region the region scrolls down instead.
func (s *Screen) ReverseLineFeed() {
	s.wrapPending = false
	if s.cursorRow == s.regionTop {
		s.ScrollDown(s.regionTop, s.regionBottom)
	} else if s.cursorRow > 0 {
		s.cursorRow--
	}
}

// ScrollUp shifts rows [top+1, bottom] up by one and blanks row bottom with
// the current attributes. When the primary screen scrolls its full visible
// area the vacated top row is pushed into scrollback.
func (s *Screen) ScrollUp(top, bottom int) {
	push := !s.inAlt && top == 0 && bottom == s.main.Rows()-1
	s.scrollUp(top, bottom, push)
}

// ScrollDown shifts rows [top, bottom-1] down by one and blanks row top.
// It never touches scrollback.
func (s *Screen) ScrollDown(top, bottom int) {
	buf := s.currentBuffer()
	top = clamp(top, 0, buf.Rows()-1)
	bottom = clamp(bottom, 0, buf.Rows()-1)
	if bottom < top {
		return
	}
	for r := bottom; r > top; r-- {
		copy(buf.Row(r), buf.Row(r-1))
	}
	buf.FillRow(top, 0, buf.Cols(), s.blankCell())
}

func (s *Screen) scrollUp(top, bottom int, push bool) {
	buf := s.currentBuffer()
	top = clamp(top, 0, buf.Rows()-1)
	bottom = clamp(bottom, 0, buf.Rows()-1)
	if bottom < top {
		return
	}

	if push && s.scrollbackMax > 0 {
		evicted := make([]Cell, buf.Cols())
		copy(evicted, buf.Row(top))
		s.pushScrollback(evicted)
	}

	for r := top; r < bottom; r++ {
		copy(buf.Row(r), buf.Row(r+1))
	}
	buf.FillRow(bottom, 0, buf.Cols(), s.blankCell())
}

// pushScrollback appends a row to the history, evicting the oldest row once
// the configured maximum is reached. Evicted rows go to the history sink.
func (s *Screen) pushScrollback(row []Cell) {
	s.scrollback = append(s.scrollback, row)
	if len(s.scrollback) > s.scrollbackMax {
		if s.sink != nil {
			s.sink.Append(s.scrollback[0])
		}
		copy(s.scrollback, s.scrollback[1:])
		s.scrollback = s.scrollback[:len(s.scrollback)-1]
	}
}

// SetScrollingRegion sets the [top, bottom] row bounds for scrolling.
// An inverted region resets to the full screen.
func (s *Screen) SetScrollingRegion(top, bottom int) {
	rows := s.main.Rows()
	if bottom < top {
		s.regionTop = 0
		s.regionBottom = rows - 1
		return
	}
	s.regionTop = clamp(top, 0, rows-1)
	s.regionBottom = clamp(bottom, 0, rows-1)
}

// ScrollingRegion returns the current [top, bottom] scrolling bounds.
func (s *Screen) ScrollingRegion() (top, bottom int) {
	return s.regionTop, s.regionBottom
}

// ScrollbackLen returns the number of retained scrollback rows.
func (s *Screen) ScrollbackLen() int { return len(s.scrollback) }
