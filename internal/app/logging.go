package app

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger writes human readable logs to out, coloured when out is a
// terminal. Unknown levels fall back to info.
func NewLogger(out *os.File, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(out.Fd()),
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
