// Package applog builds the zerolog loggers used for structured
// diagnostics: human-readable console output by default, or
// newline-delimited JSON behind --log-json for consumption by build
// pipelines.
package applog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger writing to w. json selects the wire
// format; level sets the minimum severity emitted.
func New(w io.Writer, json bool, level zerolog.Level) zerolog.Logger {
	var out io.Writer = w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// NewStderr is the wiring cmd/spritepack-layout uses: stderr,
// level parsed from a --log-level flag string, JSON mode from a bool
// flag.
func NewStderr(levelName string, json bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return New(os.Stderr, json, level)
}
