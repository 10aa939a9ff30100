// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/csi.go
// Summary: CSI parameter accumulation and dispatch.
// Usage: Part of the escape decoder.

package parser

import (
	"fmt"
	"strconv"
	"strings"
)

func (d *Decoder) processCSI(b byte) {
	switch {
	case b >= '0' && b <= '9' || b == ';':
		if d.state == stateCSIIntermediate {
			// Parameter bytes after an intermediate are malformed.
			d.state = stateCSIIgnore
			return
		}
		if len(d.params) >= maxParamBytes {
			d.state = stateCSIIgnore
			return
		}
		d.params = append(d.params, b)
		d.state = stateCSIParam
	case b >= '<' && b <= '?':
		// Private markers are only valid immediately after the CSI.
		if d.state != stateCSIEntry {
			d.state = stateCSIIgnore
			return
		}
		d.private = true
		d.state = stateCSIParam
	case b >= 0x20 && b <= 0x2f:
		d.intermediates = append(d.intermediates, b)
		d.state = stateCSIIntermediate
	case b >= 0x40 && b <= 0x7e:
		d.dispatchCSI(b)
		d.state = stateGround
	case b < 0x20:
		// Control bytes inside a sequence are swallowed.
	default:
		d.state = stateCSIIgnore
	}
}

// parseParams splits the accumulated parameter bytes on ';'. Missing or
// unparsable fields become 0.
func (d *Decoder) parseParams() []int {
	if len(d.params) == 0 {
		return nil
	}
	fields := strings.Split(string(d.params), ";")
	params := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			n = 0
		}
		params = append(params, n)
	}
	return params
}

func (d *Decoder) dispatchCSI(final byte) {
	params := d.parseParams()
	if d.private {
		d.dispatchPrivate(final, params)
		return
	}

	// arg returns the i-th parameter, substituting def for missing or zero
	// values (ECMA-48 treats 0 as "use the default" for these commands).
	arg := func(i, def int) int {
		if i < len(params) && params[i] != 0 {
			return params[i]
		}
		return def
	}

	switch final {
	case 'A':
		d.screen.MoveCursorUp(arg(0, 1))
	case 'B':
		d.screen.MoveCursorDown(arg(0, 1))
	case 'C':
		d.screen.MoveCursorForward(arg(0, 1))
	case 'D':
		d.screen.MoveCursorBackward(arg(0, 1))
	case 'E':
		d.screen.MoveCursorDown(arg(0, 1))
		d.screen.CarriageReturn()
	case 'F':
		d.screen.MoveCursorUp(arg(0, 1))
		d.screen.CarriageReturn()
	case 'G':
		d.screen.SetCursorColumn(arg(0, 1) - 1)
	case 'H', 'f':
		d.screen.SetCursorPos(arg(0, 1)-1, arg(1, 1)-1)
	case 'd':
		d.screen.SetCursorRow(arg(0, 1) - 1)
	case 'J':
		d.screen.EraseInDisplay(intAt(params, 0))
	case 'K':
		d.screen.EraseInLine(intAt(params, 0))
	case '@':
		d.screen.InsertChars(arg(0, 1))
	case 'P':
		d.screen.DeleteChars(arg(0, 1))
	case 'X':
		d.screen.EraseChars(arg(0, 1))
	case 'L':
		d.screen.InsertLines(arg(0, 1))
	case 'M':
		d.screen.DeleteLines(arg(0, 1))
	case 'S':
		top, bottom := d.screen.ScrollingRegion()
		for i := 0; i < arg(0, 1); i++ {
			d.screen.ScrollUp(top, bottom)
		}
	case 'T':
		top, bottom := d.screen.ScrollingRegion()
		for i := 0; i < arg(0, 1); i++ {
			d.screen.ScrollDown(top, bottom)
		}
	case 'm':
		d.screen.SetSGR(params)
	case 'r':
		top := arg(0, 1)
		bottom := arg(1, d.screen.Rows())
		if bottom < top {
			top, bottom = bottom, top
		}
		d.screen.SetScrollingRegion(top-1, bottom-1)
	case 's':
		d.screen.SaveCursor()
	case 'u':
		d.screen.RestoreCursor()
	case 'n':
		if intAt(params, 0) == 6 && d.respond != nil {
			row, col := d.screen.Cursor()
			d.respond([]byte(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1)))
		}
	default:
		d.logger.Debug("unhandled CSI", "final", string(rune(final)), "params", params)
	}
}

func (d *Decoder) dispatchPrivate(final byte, params []int) {
	var on bool
	switch final {
	case 'h':
		on = true
	case 'l':
		on = false
	default:
		d.logger.Debug("unhandled private CSI", "final", string(rune(final)), "params", params)
		return
	}
	for _, mode := range params {
		switch mode {
		case 25:
			d.screen.SetCursorVisible(on)
		case 1000:
			d.screen.SetMouseEnabled(on)
		case 1049:
			d.screen.UseAlternateScreen(on)
		case 2004:
			d.screen.SetBracketedPaste(on)
		default:
			d.logger.Debug("ignored private mode", "mode", mode, "set", on)
		}
	}
}

// intAt returns the i-th parameter or 0 when absent.
func intAt(params []int, i int) int {
	if i < len(params) {
		return params[i]
	}
	return 0
}
