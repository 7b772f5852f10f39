// Package logger builds the zerolog logger used by newsdb.
//
// Log output goes to stderr so that stdout stays free for command output
// (schema dumps, query results). On a terminal it uses zerolog's console
// writer; otherwise it emits one JSON object per line.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Options controls logger construction
type Options struct {
	// Level is a zerolog level name (trace, debug, info, warn, error)
	Level string

	// Verbose forces debug level regardless of Level
	Verbose bool

	// NoColor disables console colors
	NoColor bool

	// Out overrides the destination (default: os.Stderr)
	Out io.Writer
}

// New creates a logger from opts
func New(opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
		if term.IsTerminal(int(os.Stderr.Fd())) {
			out = zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.TimeOnly,
				NoColor:    opts.NoColor,
			}
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger, handy for tests and library callers
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
