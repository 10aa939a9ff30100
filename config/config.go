// Copyright © 2025 Oneterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: JSON configuration for oneterm.
// Notes: A missing config file is not an error; defaults apply.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const configName = "oneterm.json"

// Config holds oneterm's settings.
type Config struct {
	// Shell is the program to launch. Empty means $SHELL, then /bin/bash.
	Shell string `json:"shell,omitempty"`

	// Rows and Cols give the initial terminal size.
	Rows int `json:"rows,omitempty"`
	Cols int `json:"cols,omitempty"`

	// ScrollbackMax bounds the in-memory scrollback.
	ScrollbackMax int `json:"scrollback_max,omitempty"`

	// HistoryPath is the scrollback archive database. Empty disables it.
	HistoryPath string `json:"history_path,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/bash"
	}
	return Config{
		Shell:         shell,
		Rows:          24,
		Cols:          80,
		ScrollbackMax: 1000,
		LogLevel:      "warn",
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "oneterm", configName), nil
}

// Load reads the config at path, overlaying it on the defaults. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Rows < 1 {
		cfg.Rows = 24
	}
	if cfg.Cols < 1 {
		cfg.Cols = 80
	}
	if cfg.ScrollbackMax < 0 {
		cfg.ScrollbackMax = 0
	}
	return cfg, nil
}
