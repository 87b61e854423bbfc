// Package config loads service configuration and sets up logging.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	HTTPPort     string
	PostgresHost string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	BadgerPath   string
	LogFile      string
	LogLevel     slog.Level
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresDB)
}

// Load reads configuration from an optional config file and environment
// variables prefixed BAYPLAN_. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("http_port", "8080")
	v.SetDefault("postgres_host", "localhost:5432")
	v.SetDefault("postgres_user", "postgres")
	v.SetDefault("postgres_pass", "postgres")
	v.SetDefault("postgres_db", "bayplan")
	v.SetDefault("badger_path", "./data/badger")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "INFO")

	v.SetEnvPrefix("BAYPLAN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	return Config{
		HTTPPort:     v.GetString("http_port"),
		PostgresHost: v.GetString("postgres_host"),
		PostgresUser: v.GetString("postgres_user"),
		PostgresPass: v.GetString("postgres_pass"),
		PostgresDB:   v.GetString("postgres_db"),
		BadgerPath:   v.GetString("badger_path"),
		LogFile:      v.GetString("log_file"),
		LogLevel:     parseLogLevel(v.GetString("log_level")),
	}, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
