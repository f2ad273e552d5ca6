package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const debugLogName = "microtetris-debug.log"

// newLogger returns a logger appending to the debug log in the temp dir, or
// a disabled one. The game owns the terminal, so nothing is logged to it.
func newLogger(enabled bool) (zerolog.Logger, func(), error) {
	if !enabled {
		return zerolog.Nop(), func() {}, nil
	}
	path := filepath.Join(os.TempDir(), debugLogName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	log := zerolog.New(file).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return log, func() { _ = file.Close() }, nil
}
