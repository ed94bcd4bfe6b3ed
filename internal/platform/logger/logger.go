package logger

import (
	"log/slog"
	"os"
)

// New returns a structured logger with source location enabled. JSON
// output suits shipped logs; the text handler is easier on the eyes
// during local runs. Level should be a valid slog level string: DEBUG,
// INFO, WARN, ERROR. Unrecognized values default to INFO.
func New(level string, jsonOutput bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     lvl,
	}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
