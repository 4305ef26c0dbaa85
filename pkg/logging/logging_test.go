package logging

import (
	"log/slog"
	"testing"
)

func TestSetDefaultStructuredLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	SetDefaultStructuredLogger("test-service", "v0.0.1")
	if slog.Default() == prev {
		t.Error("SetDefaultStructuredLogger() did not replace default logger")
	}
}

func TestSetDefaultStructuredLoggerWithLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	tests := []struct {
		name  string
		level string
	}{
		{name: "debug", level: "debug"},
		{name: "warn", level: "warn"},
		{name: "empty falls back to info", level: ""},
		{name: "garbage falls back to info", level: "loud"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			SetDefaultStructuredLoggerWithLevel("test-service", "v0.0.1", tc.level)
			if slog.Default() == prev {
				t.Error("default logger not replaced")
			}
		})
	}
}
