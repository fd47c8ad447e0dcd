// Package logger provides structured logging for neysla using zerolog.
//
// It is the diagnostics sink for configuration errors and the place where
// dispatch and settlement of calls are traced at debug level.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("resource")
//	log.Error("delimiter mismatch", logger.Fields(logger.FieldResource, "users"))
package logger
