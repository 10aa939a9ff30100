// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session.go
// Summary: PtySession - owns the shell process and the PTY master.
// Usage: Launched once per terminal; bytes flow out through Output().
// Notes: Knows nothing about escape sequences or the screen model.

package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/creack/pty"
)

// ErrNotRunning is returned by Write and Resize before Launch or after the
// session has been closed.
var ErrNotRunning = errors.New("session: not running")

const readBufSize = 4096

// Session owns the PTY master descriptor and the shell process for exactly
// one shell invocation.
type Session struct {
	shell string

	mu      sync.Mutex
	cmd     *exec.Cmd
	ptmx    *os.File
	rows    int
	cols    int
	running bool

	out  chan []byte
	done chan struct{}

	logger *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithInitialSize sets the PTY size used at launch.
func WithInitialSize(rows, cols int) Option {
	return func(s *Session) {
		if rows > 0 && cols > 0 {
			s.rows, s.cols = rows, cols
		}
	}
}

// New creates a session for the given shell path. Nothing runs until Launch.
func New(shell string, opts ...Option) *Session {
	s := &Session{
		shell:  shell,
		rows:   24,
		cols:   80,
		out:    make(chan []byte, 16),
		done:   make(chan struct{}),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Launch starts the shell under a new PTY with a controlling terminal and
// begins pumping its output. Any resource failure is returned as a single
// error and the session does not start.
func (s *Session) Launch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("session: already launched")
	}

	cmd := exec.Command(s.shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(s.rows),
		Cols: uint16(s.cols),
	})
	if err != nil {
		return fmt.Errorf("session: start %s: %w", s.shell, err)
	}

	s.cmd = cmd
	s.ptmx = ptmx
	s.running = true

	go s.pump()
	return nil
}

// pump reads PTY output until the descriptor reports an error (the child
// exiting closes the slave side), then reaps the child and closes Output.
// The blocking Read parks this goroutine until the descriptor is readable,
// so the consumer's event loop is never held up.
func (s *Session) pump() {
	defer close(s.out)
	defer close(s.done)

	s.mu.Lock()
	ptmx := s.ptmx
	s.mu.Unlock()

	buf := make([]byte, readBufSize)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.out <- chunk
		}
		if err != nil {
			// Linux reports EIO rather than EOF once the child has
			// gone; both mean the stream is over.
			if err != io.EOF && !errors.Is(err, os.ErrClosed) && !errors.Is(err, syscall.EIO) {
				s.logger.Error("pty read", "err", err)
			}
			break
		}
	}

	// Reap without blocking any caller; Wait runs on this goroutine only.
	if err := s.cmd.Wait(); err != nil {
		s.logger.Debug("shell exited", "err", err)
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Output returns the channel of PTY output chunks. It is closed when the
// child exits or the session is closed.
func (s *Session) Output() <-chan []byte { return s.out }

// Done returns a channel closed once the child has been reaped.
func (s *Session) Done() <-chan struct{} { return s.done }

// Write sends bytes to the shell, looping on short writes until everything
// is sent or a fatal error occurs.
func (s *Session) Write(p []byte) error {
	s.mu.Lock()
	ptmx, running := s.ptmx, s.running
	s.mu.Unlock()
	if !running || ptmx == nil {
		return ErrNotRunning
	}
	for len(p) > 0 {
		n, err := ptmx.Write(p)
		p = p[n:]
		if err != nil {
			if errors.Is(err, syscall.EAGAIN) {
				continue
			}
			return fmt.Errorf("session: pty write: %w", err)
		}
	}
	return nil
}

// Resize propagates a new window size to the kernel so the child reflows.
// Redundant calls with the current size are skipped.
func (s *Session) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.ptmx == nil {
		return ErrNotRunning
	}
	if rows == s.rows && cols == s.cols {
		return nil
	}
	s.rows, s.cols = rows, cols
	if err := pty.Setsize(s.ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return fmt.Errorf("session: setsize: %w", err)
	}
	return nil
}

// Close tears the session down: the master descriptor is closed, which ends
// the pump, and the child is asked to terminate. Close never waits for a
// child that refuses to exit. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	ptmx := s.ptmx
	cmd := s.cmd
	s.ptmx = nil
	s.mu.Unlock()

	if ptmx != nil {
		ptmx.Close()
	}
	if cmd != nil && cmd.Process != nil {
		cmd.Process.Signal(syscall.SIGTERM)
	}
}
