// Package logger has constructors for the loggers handed to subcommand
// tasks. Tasks report progress through these rather than writing to
// stderr directly, so tests can silence them with Null.
package logger

import (
	"io"
	"log"
)

// Null returns a logger that discards everything.
func Null() *log.Logger {
	return log.New(io.Discard, "", log.LstdFlags)
}

// Default returns the process-wide standard logger.
func Default() *log.Logger {
	return log.Default()
}
