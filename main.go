// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: main.go
// Summary: oneterm entry point - wires the PTY session, the escape
//          decoder and the screen model to a tcell presentation.
// Notes: The decoder and model are single-threaded; all PTY output and
//        input events funnel through the one select loop below.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"oneterm/config"
	"oneterm/history"
	"oneterm/parser"
	"oneterm/session"
	oterm "oneterm/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "oneterm:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "config file path")
		logPath    = flag.String("log", "", "debug log file path")
	)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	path := *configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true})
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(lvl)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()

	cols, rows := screen.Size()
	if rows < 1 || cols < 1 {
		rows, cols = cfg.Rows, cfg.Cols
	}

	opts := []oterm.Option{
		oterm.WithScrollbackMax(cfg.ScrollbackMax),
		oterm.WithTitleHandler(func(title string) { screen.SetTitle(title) }),
	}
	var store *history.Store
	if cfg.HistoryPath != "" {
		store, err = history.Open(cfg.HistoryPath)
		if err != nil {
			logger.Warn("history archive disabled", "err", err)
		} else {
			defer store.Close()
			opts = append(opts, oterm.WithHistorySink(store))
		}
	}
	model := oterm.NewScreen(rows, cols, opts...)

	sess := session.New(cfg.Shell,
		session.WithInitialSize(rows, cols),
		session.WithLogger(logger),
	)
	if err := sess.Launch(); err != nil {
		return err
	}
	defer sess.Close()

	decoder := parser.NewDecoder(model,
		parser.WithLogger(logger),
		parser.WithBellHandler(func() { screen.Beep() }),
		parser.WithResponder(func(b []byte) { sess.Write(b) }),
	)

	ui := &ui{
		screen:  screen,
		model:   model,
		sess:    sess,
		decoder: decoder,
		logger:  logger,
	}
	return ui.loop()
}

// ui holds presentation state: the view offset into history and the
// in-progress mouse selection.
type ui struct {
	screen  tcell.Screen
	model   *oterm.Screen
	sess    *session.Session
	decoder *parser.Decoder
	logger  *log.Logger

	viewOffset int // lines scrolled back from the live screen
	dragging   bool
	lastClick  time.Time
	lastLine   int
	lastCol    int
}

func (u *ui) loop() error {
	events := make(chan tcell.Event, 8)
	quit := make(chan struct{})
	go u.screen.ChannelEvents(events, quit)
	defer close(quit)

	u.draw()
	for {
		select {
		case chunk, ok := <-u.sess.Output():
			if !ok {
				return nil
			}
			u.decoder.Feed(chunk)
			// Fresh output snaps the view back to the live screen.
			u.viewOffset = 0
			u.draw()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				u.handleKey(ev)
			case *tcell.EventResize:
				cols, rows := ev.Size()
				u.model.Resize(rows, cols)
				if err := u.sess.Resize(rows, cols); err != nil {
					u.logger.Warn("resize", "err", err)
				}
				u.screen.Sync()
				u.draw()
			case *tcell.EventMouse:
				u.handleMouse(ev)
			}
		}
	}
}

// handleKey translates a tcell key event to the byte sequence the shell
// expects and writes it to the PTY. Any keypress leaves scrollback view.
func (u *ui) handleKey(ev *tcell.EventKey) {
	u.viewOffset = 0

	var keyBytes []byte
	switch ev.Key() {
	case tcell.KeyUp:
		keyBytes = []byte("\x1b[A")
	case tcell.KeyDown:
		keyBytes = []byte("\x1b[B")
	case tcell.KeyRight:
		keyBytes = []byte("\x1b[C")
	case tcell.KeyLeft:
		keyBytes = []byte("\x1b[D")
	case tcell.KeyHome:
		keyBytes = []byte("\x1b[H")
	case tcell.KeyEnd:
		keyBytes = []byte("\x1b[F")
	case tcell.KeyInsert:
		keyBytes = []byte("\x1b[2~")
	case tcell.KeyDelete:
		keyBytes = []byte("\x1b[3~")
	case tcell.KeyPgUp:
		keyBytes = []byte("\x1b[5~")
	case tcell.KeyPgDn:
		keyBytes = []byte("\x1b[6~")
	case tcell.KeyEnter:
		keyBytes = []byte("\r")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		keyBytes = []byte{0x7f}
	case tcell.KeyTab:
		keyBytes = []byte("\t")
	case tcell.KeyEsc:
		keyBytes = []byte("\x1b")
	default:
		keyBytes = []byte(string(ev.Rune()))
	}

	if len(keyBytes) > 0 {
		if err := u.sess.Write(keyBytes); err != nil {
			u.logger.Debug("key write", "err", err)
		}
	}
	u.draw()
}

// handleMouse drives either local selection and scrollback, or X10 mouse
// reporting when the application has asked for it.
func (u *ui) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()

	if u.model.MouseEnabled() {
		u.reportMouse(ev, row, col)
		return
	}

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		u.viewOffset = min(u.viewOffset+3, u.model.ScrollbackLen())
		u.draw()
	case ev.Buttons()&tcell.WheelDown != 0:
		u.viewOffset = max(u.viewOffset-3, 0)
		u.draw()
	case ev.Buttons()&tcell.Button1 != 0:
		line := u.viewTop() + row
		if !u.dragging {
			// Two presses on the same cell in quick succession select
			// the surrounding word.
			if time.Since(u.lastClick) < 500*time.Millisecond &&
				line == u.lastLine && col == u.lastCol {
				u.model.SelectWordAt(line, col)
				u.draw()
				return
			}
			u.lastClick = time.Now()
			u.lastLine, u.lastCol = line, col
			u.dragging = true
			u.model.StartSelection(line, col)
		} else {
			u.model.ExtendSelection(line, col)
		}
		u.draw()
	case ev.Buttons()&tcell.Button2 != 0:
		u.pasteSelection()
	default:
		if u.dragging {
			u.dragging = false
			u.model.FinishSelection()
			u.draw()
		}
	}
}

// reportMouse sends an X10-style mouse report for a button transition.
func (u *ui) reportMouse(ev *tcell.EventMouse, row, col int) {
	var cb int
	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		cb = 0
	case ev.Buttons()&tcell.Button2 != 0:
		cb = 1
	case ev.Buttons()&tcell.Button3 != 0:
		cb = 2
	case ev.Buttons()&tcell.WheelUp != 0:
		cb = 64
	case ev.Buttons()&tcell.WheelDown != 0:
		cb = 65
	default:
		cb = 3 // release
	}
	seq := []byte{0x1b, '[', 'M', byte(32 + cb), byte(33 + col), byte(33 + row)}
	if err := u.sess.Write(seq); err != nil {
		u.logger.Debug("mouse report", "err", err)
	}
}

// pasteSelection writes the current selection back to the shell, honoring
// bracketed paste mode.
func (u *ui) pasteSelection() {
	text := u.model.SelectedText()
	if text == "" {
		return
	}
	if u.model.BracketedPaste() {
		text = "\x1b[200~" + text + "\x1b[201~"
	}
	if err := u.sess.Write([]byte(text)); err != nil {
		u.logger.Debug("paste", "err", err)
	}
}

// viewTop returns the absolute line shown at the top of the window.
func (u *ui) viewTop() int {
	return u.model.TotalLines() - u.model.Rows() - u.viewOffset
}

func (u *ui) draw() {
	rows, cols := u.model.Size()
	top := u.viewTop()

	for y := 0; y < rows; y++ {
		cells := u.model.CellsAtAbsoluteLine(top + y)
		for x := 0; x < cols; x++ {
			var cell oterm.Cell
			if x < len(cells) {
				cell = cells[x]
			} else {
				cell = oterm.BlankCell()
			}
			if cell.Rune == 0 && x > 0 {
				continue // spill half of a wide rune
			}
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			style := styleFor(cell)
			if u.model.SelectionContains(top+y, x) {
				style = style.Reverse(true)
			}
			u.screen.SetContent(x, y, r, nil, style)
		}
	}

	if u.viewOffset == 0 && u.model.CursorVisible() {
		_, c := u.model.Cursor()
		u.screen.ShowCursor(c, u.model.CursorAbsoluteLine()-top)
	} else {
		u.screen.HideCursor()
	}
	u.screen.Show()
}

func styleFor(cell oterm.Cell) tcell.Style {
	bold := cell.Attr&oterm.AttrBold != 0
	fg := oterm.ColorForIndex(cell.FG, bold)
	bg := oterm.ColorForIndex(cell.BG, false)
	fr, fgG, fb := fg.RGB255()
	br, bgG, bb := bg.RGB255()

	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fr), int32(fgG), int32(fb))).
		Background(tcell.NewRGBColor(int32(br), int32(bgG), int32(bb)))
	if bold {
		style = style.Bold(true)
	}
	if cell.Attr&oterm.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if cell.Attr&oterm.AttrInverse != 0 {
		style = style.Reverse(true)
	}
	if cell.Attr&oterm.AttrBlink != 0 {
		style = style.Blink(true)
	}
	return style
}
