// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/store.go
// Summary: SQLite archive for lines evicted from in-memory scrollback.
// Usage: Plugged into the screen model as its history sink.
// Notes: Appends never block the decoder; write errors are remembered
//        and surfaced through Err().

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"oneterm/term"
)

// SQLite schema for the archive. Line ids are assigned by the database in
// arrival order, which matches scrollback eviction order.
const schema = `
CREATE TABLE IF NOT EXISTS lines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lines_timestamp ON lines(timestamp);
`

// Line is one archived scrollback line.
type Line struct {
	ID        int64
	Timestamp time.Time
	Content   string
}

// Store archives scrollback lines in a SQLite database once they age past
// the in-memory limit.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	lastErr error
}

// Open creates or opens the archive at the given path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Append archives one line of cells. It implements term.HistorySink. Errors
// are swallowed here so the decoder path never stalls; check Err() at
// shutdown.
func (s *Store) Append(cells []term.Cell) {
	text := renderLine(cells)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return
	}
	_, err := s.db.Exec(
		"INSERT INTO lines (timestamp, content) VALUES (?, ?)",
		time.Now().UnixNano(), text,
	)
	if err != nil && s.lastErr == nil {
		s.lastErr = fmt.Errorf("history: append: %w", err)
	}
}

// renderLine flattens a cell row to plain text, dropping attributes and
// trailing blanks. Zero runes are wide-cell spill and produce nothing.
func renderLine(cells []term.Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.Rune == 0 {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

// Len reports the number of archived lines.
func (s *Store) Len() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM lines").Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}

// Tail returns the most recent limit lines in chronological order.
func (s *Store) Tail(limit int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, timestamp, content FROM (
			SELECT id, timestamp, content
			FROM lines ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: tail: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

// Search returns archived lines containing the query as a substring,
// newest first.
func (s *Store) Search(query string, limit int) ([]Line, error) {
	if query == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pattern := "%" + strings.ReplaceAll(strings.ReplaceAll(query, "%", `\%`), "_", `\_`) + "%"
	rows, err := s.db.Query(`
		SELECT id, timestamp, content
		FROM lines
		WHERE content LIKE ? ESCAPE '\'
		ORDER BY id DESC
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("history: search: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

func scanLines(rows *sql.Rows) ([]Line, error) {
	var lines []Line
	for rows.Next() {
		var l Line
		var tsNano int64
		if err := rows.Scan(&l.ID, &tsNano, &l.Content); err != nil {
			continue
		}
		l.Timestamp = time.Unix(0, tsNano)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Err returns the first append error seen, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close closes the database. Further Appends become no-ops.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Compile-time interface check
var _ term.HistorySink = (*Store)(nil)
