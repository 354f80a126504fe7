package utils

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. With APP_ENV=development the output
// is a human-readable console writer, otherwise JSON lines.
func NewLogger() zerolog.Logger {
	if os.Getenv("APP_ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
