// Package logging provides structured logging utilities for the asanasync
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "sync")
//	logger.Info("cycle complete",
//	    logging.Status(logging.StatusSuccess))
//
// Tokens are never logged directly; use SanitizeToken when a credential must
// appear in a message at all.
package logging
