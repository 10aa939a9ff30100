// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/decoder.go
// Summary: Byte-stream decoder for ANSI/VT control sequences.
// Usage: Fed raw PTY output; applies every decoded unit to a term.Screen.
// Notes: Keeps parsing concerns isolated from the screen model and rendering.

package parser

import (
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"oneterm/term"
)

type state int

const (
	stateGround state = iota
	stateEscape
	stateCharset
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateOSCString
	stateOSCEscape
)

// Buffer caps. Adversarial input that exceeds them is discarded rather than
// accumulated without bound.
const (
	maxParamBytes = 256
	maxOSCBytes   = 4096
)

// Decoder turns a raw byte stream into screen model mutations. Sequences
// split across Feed calls are reassembled; malformed sequences degrade to
// no-ops and the machine always returns to ground on a final byte.
type Decoder struct {
	screen *term.Screen
	state  state

	// Pending printable text, kept as raw bytes so multi-byte UTF-8
	// sequences are never split at a flush boundary.
	text []byte

	params        []byte
	intermediates []byte
	private       bool
	osc           []byte

	logger    *log.Logger
	onBell    func()
	onRepaint func()
	respond   func([]byte)
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for unrecognized sequences.
func WithLogger(logger *log.Logger) Option {
	return func(d *Decoder) { d.logger = logger }
}

// WithBellHandler sets a callback invoked on BEL.
func WithBellHandler(handler func()) Option {
	return func(d *Decoder) { d.onBell = handler }
}

// WithRepaintNotifier sets a callback invoked once at the end of each Feed
// that processed any bytes, however many cells changed.
func WithRepaintNotifier(handler func()) Option {
	return func(d *Decoder) { d.onRepaint = handler }
}

// WithResponder sets the write-back path used to answer queries such as the
// cursor position report. Normally wired to the PTY session's Write.
func WithResponder(respond func([]byte)) Option {
	return func(d *Decoder) { d.respond = respond }
}

// NewDecoder creates a decoder bound to the given screen.
func NewDecoder(screen *term.Screen, opts ...Option) *Decoder {
	d := &Decoder{
		screen: screen,
		state:  stateGround,
		params: make([]byte, 0, 16),
		osc:    make([]byte, 0, 128),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed consumes a chunk of raw bytes, decodes everything self-contained and
// applies the resulting mutations to the screen. Partial sequences at the
// end of the chunk are retained for the next call. Feed never fails.
func (d *Decoder) Feed(data []byte) {
	for _, b := range data {
		d.processByte(b)
	}
	d.flushText()
	if len(data) > 0 && d.onRepaint != nil {
		d.onRepaint()
	}
}

// Reset returns the decoder to ground and drops all pending state.
func (d *Decoder) Reset() {
	d.state = stateGround
	d.text = d.text[:0]
	d.params = d.params[:0]
	d.intermediates = nil
	d.private = false
	d.osc = d.osc[:0]
}

func (d *Decoder) processByte(b byte) {
	switch d.state {
	case stateGround:
		d.processGround(b)
	case stateEscape:
		d.processEscape(b)
	case stateCharset:
		// The charset designator byte itself carries no meaning here.
		d.state = stateGround
	case stateCSIEntry, stateCSIParam, stateCSIIntermediate:
		d.processCSI(b)
	case stateCSIIgnore:
		if b >= 0x40 && b <= 0x7e {
			d.state = stateGround
		}
	case stateOSCString:
		d.processOSC(b)
	case stateOSCEscape:
		if b == '\\' {
			d.dispatchOSC()
		}
		d.state = stateGround
		if b != '\\' {
			// The ESC aborted the string; the current byte restarts
			// normal processing.
			d.processByte(0x1b)
			d.processByte(b)
		}
	}
}

func (d *Decoder) processGround(b byte) {
	switch {
	case b == 0x1b:
		d.flushText()
		d.state = stateEscape
	case b < 0x20:
		d.flushText()
		d.processControl(b)
	case b == 0x7f:
		d.flushText()
	default:
		d.text = append(d.text, b)
	}
}

func (d *Decoder) processControl(b byte) {
	switch b {
	case 0x07:
		if d.onBell != nil {
			d.onBell()
		}
	case 0x08:
		d.screen.Backspace()
	case 0x09:
		d.screen.Tab()
	case 0x0a:
		d.screen.LineFeed()
	case 0x0d:
		d.screen.CarriageReturn()
	}
}

func (d *Decoder) processEscape(b byte) {
	switch b {
	case '[':
		d.state = stateCSIEntry
		d.params = d.params[:0]
		d.intermediates = nil
		d.private = false
	case ']':
		d.state = stateOSCString
		d.osc = d.osc[:0]
	case '7':
		d.screen.SaveCursor()
		d.state = stateGround
	case '8':
		d.screen.RestoreCursor()
		d.state = stateGround
	case 'D':
		d.screen.LineFeed()
		d.state = stateGround
	case 'M':
		d.screen.ReverseLineFeed()
		d.state = stateGround
	case 'E':
		d.screen.LineFeed()
		d.screen.CarriageReturn()
		d.state = stateGround
	case 'c':
		d.screen.Reset()
		d.Reset()
	case '(', ')', '*', '+':
		d.state = stateCharset
	default:
		d.logger.Debug("unhandled escape", "byte", string(rune(b)))
		d.state = stateGround
	}
}

// flushText decodes the pending bytes as UTF-8 and writes each printable
// rune to the screen. An incomplete trailing sequence stays buffered so a
// rune split across chunks is decoded whole on a later flush.
func (d *Decoder) flushText() {
	buf := d.text
	for len(buf) > 0 {
		if !utf8.FullRune(buf) {
			break
		}
		r, size := utf8.DecodeRune(buf)
		buf = buf[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		d.screen.PutChar(r)
	}
	// Shift the retained tail to the front so later appends extend it.
	n := copy(d.text, buf)
	d.text = d.text[:n]
}
