// Package logging provides structured logging for zonectl.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the tool. It provides both general logging
// functions and specialized functions for discovery-specific events.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (raw announcements, frame parsing)
//   - Info: Normal operations (discovery start, devices found)
//   - Warn: Non-fatal issues (malformed announcements, skipped blocks)
//   - Error: Fatal issues (socket failures, unreachable proxy)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Found device",
//	    zap.String("usn", "uuid:RINCON_000E5812BC8001400::urn:..."),
//	    zap.String("host", "192.168.1.50"),
//	)
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. Set the
// ZONECTL_LOG_LEVEL environment variable ("debug", "info", "warn", "error")
// to enable output, and call Sync on shutdown:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
