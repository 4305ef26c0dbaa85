package logging

import (
	"log/slog"
	"os"
)

// SetDefaultStructuredLogger installs a JSON slog handler as the process
// default, tagged with the service name and version.
func SetDefaultStructuredLogger(name, version string) {
	SetDefaultStructuredLoggerWithLevel(name, version, "")
}

// SetDefaultStructuredLoggerWithLevel is SetDefaultStructuredLogger with an
// explicit level ("debug", "info", "warn", "error"). An empty or
// unparseable level falls back to info.
func SetDefaultStructuredLoggerWithLevel(name, version, level string) {
	lvl := slog.LevelInfo
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = slog.LevelInfo
		}
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})

	logger := slog.New(handler).With(
		"service", name,
		"version", version,
	)
	slog.SetDefault(logger)
}
