// Package config loads typed configuration structs from environment
// variables. It wraps caarlos0/env with optional .env file support via
// godotenv and caches each configuration type so repeated loads across
// packages return the same parsed values.
//
// Usage:
//
//	type GatewayConfig struct {
//		Endpoint string        `env:"GATEWAY_URL,required"`
//		Timeout  time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg GatewayConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
package config
