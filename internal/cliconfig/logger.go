package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/qwerty0zero/book-catalog/pkg/log"
)

// Logger returns the CLI logger: human-readable lines on stderr at the
// configured level, so stdout carries only results.
func Logger(level string) zerolog.Logger {
	return log.NewConsoleLogger(os.Stderr, log.ParseLevel(level))
}
