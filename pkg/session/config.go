package session

import "time"

// Config holds env-driven settings for the in-memory store.
type Config struct {
	// IdleTTL is how long a session may sit without activity before the
	// cleanup loop evicts it. Zero disables idle eviction and abandoned
	// sessions stay resident until cleared.
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`

	// CleanupInterval is how often the eviction loop runs. Zero disables
	// the loop entirely.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}
