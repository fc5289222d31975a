// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/buid/cmd/buid/cli"
)

// Segment colors, ANSI 256-color codes.
const (
	prefixColor  = lipgloss.Color("75")  // blue
	contentColor = lipgloss.Color("114") // green
	suffixColor  = lipgloss.Color("179") // amber
	labelColor   = lipgloss.Color("245") // gray
)

// fieldRenderer prints label/value rows with aligned, styled labels.
// Styling is applied only when the output is a terminal that supports
// color; otherwise the rows are plain text.
type fieldRenderer struct {
	label   lipgloss.Style
	prefix  lipgloss.Style
	content lipgloss.Style
	suffix  lipgloss.Style
}

func newFieldRenderer(w io.Writer) *fieldRenderer {
	profile := termenv.Ascii
	if file, ok := w.(*os.File); ok && cli.IsTerminal(w) {
		profile = termenv.NewOutput(file).EnvColorProfile()
	}
	// SetColorProfile is required: without it the renderer re-detects
	// from the environment and ignores the profile given here.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &fieldRenderer{
		label:   renderer.NewStyle().Foreground(labelColor).Bold(true),
		prefix:  renderer.NewStyle().Foreground(prefixColor),
		content: renderer.NewStyle().Foreground(contentColor),
		suffix:  renderer.NewStyle().Foreground(suffixColor),
	}
}

// field is one output row.
type field struct {
	label string
	value string
}

// write prints rows with values starting in a common column. Widths
// are measured on the styled labels, ignoring escape sequences.
func (r *fieldRenderer) write(w io.Writer, rows []field) error {
	labels := make([]string, len(rows))
	width := 0
	for i, row := range rows {
		labels[i] = r.label.Render(row.label)
		width = max(width, ansi.StringWidth(labels[i]))
	}
	for i, row := range rows {
		padding := strings.Repeat(" ", width-ansi.StringWidth(labels[i]))
		if _, err := fmt.Fprintf(w, "%s%s  %s\n", labels[i], padding, row.value); err != nil {
			return err
		}
	}
	return nil
}
