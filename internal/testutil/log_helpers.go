// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TestLogLevel sets the global log level for the duration of a test
func TestLogLevel(t *testing.T, level zerolog.Level) {
	t.Helper()
	prevLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(level)
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
	})
}

// InitTestLogger points the global logger at stderr. LOG_LEVEL overrides the
// default warn level, so engine diagnostics stay quiet unless asked for.
func InitTestLogger() {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// BufferLogger returns a JSON logger that writes into the returned buffer
func BufferLogger(level zerolog.Level) (zerolog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return zerolog.New(buf).Level(level), buf
}
