// Package config loads per-service configuration through viper. Each
// service binary gets an explicit Config value at startup; nothing reads
// ambient global state after that.
package config

import "github.com/spf13/viper"

// Config holds the runtime configuration for one service process.
type Config struct {
	ServiceName string
	Port        string
	DatabaseDSN string
	RabbitMQURL string
}

// Load builds the configuration for the named service. Environment
// variables override the defaults. An empty DATABASE_DSN runs the service
// against the in-memory repositories; an empty RABBITMQ_URL disables
// event publishing.
func Load(serviceName, defaultPort string) Config {
	v := viper.New()
	v.SetDefault("APP_PORT", defaultPort)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	return Config{
		ServiceName: serviceName,
		Port:        v.GetString("APP_PORT"),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
	}
}
