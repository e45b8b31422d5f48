// Package telemetry wraps zerolog into a leveled, timestamped console
// logger tagged by component.
package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a console logger at the given level, tagged with component.
// Pass zerolog.Disabled or use Nop for tests that don't want log noise.
func New(component string, level zerolog.Level, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("component", component).Logger()
}

// Nop returns a logger that discards everything, for tests and library
// callers who don't supply their own logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel parses a level string, falling back to InfoLevel on error.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
