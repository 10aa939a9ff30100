// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/screen.go
// Summary: Screen - the terminal screen model: grids, cursor, scrollback.
// Usage: Mutated by the escape decoder, read by the presentation layer.
// Notes: Not safe for concurrent use; the decoder and renderer share one loop.

package term

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Default terminal dimensions used when no size is supplied.
const (
	DefaultRows = 24
	DefaultCols = 80

	defaultScrollbackMax = 1000
)

// HistorySink receives rows as they are evicted from the bounded scrollback.
// Implementations must copy what they need; the slice is reused afterwards.
type HistorySink interface {
	Append(line []Cell)
}

// Screen owns the primary and alternate grids, the scrollback history, the
// cursor, the current attributes and the scrolling region. Every mutator
// leaves the cursor and region inside the grid bounds.
type Screen struct {
	main *ScreenBuffer
	alt  *ScreenBuffer

	inAlt bool

	scrollback    [][]Cell
	scrollbackMax int

	cursorRow, cursorCol int
	savedRow, savedCol   int
	// Cursor shadow taken when entering the alternate screen (mode 1049).
	altSavedRow, altSavedCol int

	curFG, curBG int
	curAttr      Attribute

	regionTop, regionBottom int

	wrapPending bool

	cursorVisible  bool
	mouseEnabled   bool
	bracketedPaste bool

	title   string
	onTitle func(string)

	sink HistorySink

	sel selection
}

// Option configures a Screen.
type Option func(*Screen)

// WithScrollbackMax sets the maximum number of retained scrollback rows.
func WithScrollbackMax(n int) Option {
	return func(s *Screen) {
		if n >= 0 {
			s.scrollbackMax = n
		}
	}
}

// WithTitleHandler sets a callback invoked when OSC 0/2 changes the title.
func WithTitleHandler(handler func(string)) Option {
	return func(s *Screen) { s.onTitle = handler }
}

// WithHistorySink forwards rows evicted from scrollback to the given sink.
func WithHistorySink(sink HistorySink) Option {
	return func(s *Screen) { s.sink = sink }
}

// NewScreen creates a screen model of the given size with default attributes.
func NewScreen(rows, cols int, opts ...Option) *Screen {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	s := &Screen{
		main:          NewScreenBuffer(rows, cols),
		alt:           NewScreenBuffer(rows, cols),
		scrollbackMax: defaultScrollbackMax,
		curFG:         DefaultFG,
		curBG:         DefaultBG,
		regionTop:     0,
		regionBottom:  rows - 1,
		cursorVisible: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// currentBuffer returns the active grid (primary or alternate).
func (s *Screen) currentBuffer() *ScreenBuffer {
	if s.inAlt {
		return s.alt
	}
	return s.main
}

// Size returns the grid dimensions.
func (s *Screen) Size() (rows, cols int) {
	return s.main.Rows(), s.main.Cols()
}

// Rows returns the number of visible rows.
func (s *Screen) Rows() int { return s.main.Rows() }

// Cols returns the number of visible columns.
func (s *Screen) Cols() int { return s.main.Cols() }

// blankCell returns a space cell carrying the current attributes, used for
// erases and scroll fills so background-colored erases behave like xterm.
func (s *Screen) blankCell() Cell {
	return Cell{Rune: ' ', FG: s.curFG, BG: s.curBG, Attr: s.curAttr}
}

// PutChar writes a printable rune at the cursor using the current attributes
// and advances the cursor. Wrapping follows the wrap-on-next-write policy:
// writing into the last column arms a pending wrap which the next printable
// write resolves with a line feed.
func (s *Screen) PutChar(r rune) {
	if !unicode.IsPrint(r) {
		return
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}

	buf := s.currentBuffer()
	cols := buf.Cols()

	if s.wrapPending || (w == 2 && s.cursorCol == cols-1) {
		s.wrapPending = false
		s.LineFeed()
		s.cursorCol = 0
	}

	buf.SetCell(s.cursorRow, s.cursorCol, Cell{Rune: r, FG: s.curFG, BG: s.curBG, Attr: s.curAttr})
	if w == 2 {
		// Wide runes own two columns; the spill cell stays empty.
		buf.SetCell(s.cursorRow, s.cursorCol+1, Cell{Rune: 0, FG: s.curFG, BG: s.curBG, Attr: s.curAttr})
	}

	if s.cursorCol+w >= cols {
		s.cursorCol = cols - 1
		s.wrapPending = true
	} else {
		s.cursorCol += w
	}
}

// UseAlternateScreen switches between the primary and alternate grids.
// Entering saves the cursor and blanks the alternate buffer at the primary's
// current size; leaving restores the saved cursor. Idempotent.
func (s *Screen) UseAlternateScreen(alt bool) {
	if s.inAlt == alt {
		return
	}
	if alt {
		s.altSavedRow, s.altSavedCol = s.cursorRow, s.cursorCol
		s.alt.Resize(s.main.Rows(), s.main.Cols(), s.blankCell())
		s.inAlt = true
	} else {
		s.inAlt = false
		s.SetCursorPos(s.altSavedRow, s.altSavedCol)
	}
	s.wrapPending = false
}

// InAlternateScreen reports whether the alternate grid is active.
func (s *Screen) InAlternateScreen() bool { return s.inAlt }

// Resize changes both grids to rows x cols. The primary's content is kept
// for the overlapping top-left rectangle; new cells carry the current
// attributes. The scrolling region resets to the full screen and the cursor
// is re-clamped.
func (s *Screen) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if rows == s.main.Rows() && cols == s.main.Cols() {
		return
	}

	old := s.main
	blank := s.blankCell()

	s.main = NewScreenBuffer(rows, cols)
	s.main.Fill(blank)
	copyRows := min(rows, old.Rows())
	copyCols := min(cols, old.Cols())
	for r := 0; r < copyRows; r++ {
		copy(s.main.Row(r)[:copyCols], old.Row(r)[:copyCols])
	}

	s.alt.Resize(rows, cols, blank)

	s.regionTop = 0
	s.regionBottom = rows - 1
	s.wrapPending = false
	s.clampCursor()
}

// Reset restores the screen to its initial state: both grids blanked with
// default attributes, scrollback cleared, primary screen active, cursor
// home, full scrolling region.
func (s *Screen) Reset() {
	s.curFG = DefaultFG
	s.curBG = DefaultBG
	s.curAttr = 0
	s.main.Fill(BlankCell())
	s.alt.Fill(BlankCell())
	s.scrollback = nil
	s.inAlt = false
	s.cursorRow, s.cursorCol = 0, 0
	s.savedRow, s.savedCol = 0, 0
	s.regionTop = 0
	s.regionBottom = s.main.Rows() - 1
	s.wrapPending = false
	s.cursorVisible = true
	s.ClearSelection()
}

// SetTitle records the window title and notifies the handler, if any.
func (s *Screen) SetTitle(title string) {
	s.title = title
	if s.onTitle != nil {
		s.onTitle(title)
	}
}

// Title returns the last title set through OSC 0/2.
func (s *Screen) Title() string { return s.title }

// SetMouseEnabled toggles mouse reporting (private mode 1000).
func (s *Screen) SetMouseEnabled(on bool) { s.mouseEnabled = on }

// MouseEnabled reports whether mouse reporting is on.
func (s *Screen) MouseEnabled() bool { return s.mouseEnabled }

// SetCursorVisible toggles cursor visibility (private mode 25).
func (s *Screen) SetCursorVisible(on bool) { s.cursorVisible = on }

// CursorVisible reports whether the cursor should be drawn.
func (s *Screen) CursorVisible() bool { return s.cursorVisible }

// SetBracketedPaste toggles bracketed paste mode (private mode 2004).
func (s *Screen) SetBracketedPaste(on bool) { s.bracketedPaste = on }

// BracketedPaste reports whether pastes should be wrapped in ESC[200~/201~.
func (s *Screen) BracketedPaste() bool { return s.bracketedPaste }
