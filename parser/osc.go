// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/osc.go
// Summary: OSC (Operating System Command) accumulation and dispatch.
// Usage: Part of the escape decoder.

package parser

import (
	"strconv"
	"strings"
)

func (d *Decoder) processOSC(b byte) {
	switch b {
	case 0x07:
		d.dispatchOSC()
		d.state = stateGround
	case 0x1b:
		d.state = stateOSCEscape
	default:
		if len(d.osc) < maxOSCBytes {
			d.osc = append(d.osc, b)
		}
	}
}

// dispatchOSC interprets the accumulated string, split once at the first
// semicolon. Codes 0 and 2 set the window title; everything else is
// consumed silently so it cannot corrupt later parsing.
func (d *Decoder) dispatchOSC() {
	s := string(d.osc)
	d.osc = d.osc[:0]

	prefix, payload, ok := strings.Cut(s, ";")
	if !ok {
		return
	}
	code, err := strconv.Atoi(prefix)
	if err != nil {
		return
	}
	switch code {
	case 0, 2:
		d.screen.SetTitle(payload)
	default:
		d.logger.Debug("ignored OSC", "code", code)
	}
}
