// Package cli implements the docsink command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log. Status
// lines use lipgloss styles; log output goes to stderr so artifacts can be
// piped from stdout.
//
// # Commands
//
//   - render: render a JSON document tree to html, markdown or events
//   - outline: print the section outline as text, DOT or SVG
//   - cache: inspect or clear the artifact cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Settings are read from --config or the nearest .docsink.toml; flags
// override them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond, e.g.
// "Built outline (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
