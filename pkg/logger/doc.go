// Package logger builds configured *slog.Logger instances. It provides a
// small factory with functional options for level, format and output, an
// env-driven Config for production wiring, and attribute helpers that keep
// log field names consistent across the codebase.
package logger
