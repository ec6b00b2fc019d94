package cliconfig

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger returns a console logger writing to out at the given level.
// An unknown level falls back to info.
func Logger(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
