// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to stderr. When
// stderr is a terminal it uses slog.TextHandler for human-readable
// output; when piped or redirected it uses slog.JSONHandler so scripts
// and CI can parse it. verbose lowers the level to Debug, which shows
// every minted identifier.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(params.Verbose).With("command", "new", "kind", k.Name)
func NewCommandLogger(verbose bool) *slog.Logger {
	return NewLogger(os.Stderr, verbose)
}

// NewLogger is NewCommandLogger writing to w. Commands that take their
// streams as parameters use it so tests can capture log output.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return newLogger(w, IsTerminal(w), verbose)
}

func newLogger(w io.Writer, terminal, verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if terminal {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// IsTerminal reports whether w is a terminal. Writers that are not
// files never are.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
