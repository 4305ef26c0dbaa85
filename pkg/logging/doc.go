// Package logging configures the process-wide structured logger.
//
// The API surface installs a JSON slog handler tagged with the service name
// and version so every log line carries service identity:
//
//	logging.SetDefaultStructuredLogger("batchplan-api", version)
//	slog.Info("starting", "port", 8080)
//
// Use SetDefaultStructuredLoggerWithLevel to override the level, e.g. "debug"
// during development or "warn" in noisy environments. Library packages log
// through the default slog logger and never install handlers themselves.
package logging
