// Package config loads transitcore's runtime configuration from
// environment variables and an optional .env file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the transitcore server and CLI.
type Config struct {
	Server ServerConfig
	Feed   FeedConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `mapstructure:"SERVER_HOST"`
	Port int    `mapstructure:"SERVER_PORT"`
}

// FeedConfig selects where the schedule feed is loaded from.
type FeedConfig struct {
	// Source is "csv" or "postgres".
	Source string `mapstructure:"FEED_SOURCE"`
	// Path is a GTFS directory or zip file, used when Source is "csv".
	Path string `mapstructure:"FEED_PATH"`
	// DatabaseURL is a postgres connection string, used when Source is "postgres".
	DatabaseURL string `mapstructure:"FEED_DATABASE_URL"`
}

// Addr returns the HTTP listen address in host:port form.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables and a .env file
// in the current directory, if present.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("FEED_SOURCE", "csv")
	viper.SetDefault("FEED_PATH", "./gtfs")
	viper.SetDefault("FEED_DATABASE_URL", "")

	// Missing .env is fine — env vars or defaults take over.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetInt("SERVER_PORT"),
		},
		Feed: FeedConfig{
			Source:      viper.GetString("FEED_SOURCE"),
			Path:        viper.GetString("FEED_PATH"),
			DatabaseURL: viper.GetString("FEED_DATABASE_URL"),
		},
	}

	return cfg, nil
}
