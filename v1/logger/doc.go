// Package logger provides structured logging for the hivetrace library.
//
// The package wraps Uber's Zap with a small interface tailored to how the
// other hivetrace packages log: a message, an optional error, and optional
// structured field maps. It integrates with the fx dependency injection
// framework and can correlate entries with the active OpenTelemetry trace.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" pattern:
//   - Log interface: the contract consumed by other packages
//   - Logger struct: the concrete Zap-backed implementation
//   - NewLoggerClient constructor: returns *Logger
//   - FXModule: provides both *Logger and the Log interface
//
// Core features:
//   - Structured JSON logging with key-value pairs
//   - Log levels (debug, info, warning, error)
//   - Optional trace/span ID extraction from context for log correlation
//   - Service name and PID stamped on every entry
//
// # Direct Usage (Without FX)
//
//	import "github.com/honeyhive/hivetrace/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "hivetrace",
//		EnableTracing: true,
//	})
//
//	log.Info("integration complete", nil, map[string]interface{}{
//		"strategy": "secondary_provider",
//	})
//
//	// With trace correlation (adds trace_id and span_id fields)
//	log.InfoWithContext(ctx, "span enriched", nil, nil)
//
// # Role In Degraded Operation
//
// When the resilience package switches the library into its console-logging
// fallback mode, the *Logger is the handle returned to callers: telemetry
// that can no longer be exported is logged locally instead, and the host
// application continues unaffected.
package logger
