// Package httpserver provides a lightweight wrapper around net/http that adds
// graceful shutdown, configurable server timeouts, health-check handlers, and
// structured logging via slog.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal is
// received, then shuts the server down with a configurable deadline.
// Construction goes through New or NewFromConfig together with Option helpers
// such as WithAddr, WithReadTimeout and WithLogger.
package httpserver
