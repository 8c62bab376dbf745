package build

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger writing to w at the level for v.
func NewLogger(w io.Writer, v Verbosity) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(output).Level(v.Level()).With().Timestamp().Logger()
}
