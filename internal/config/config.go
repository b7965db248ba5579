package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Auth      Auth      `mapstructure:"auth"`
	Database  Database  `mapstructure:"database"`
	Logger    Logger    `mapstructure:"logger"`
	Dashboard Dashboard `mapstructure:"dashboard"`
}

// Server holds the configuration for the HTTP API server.
type Server struct {
	Port        int      `mapstructure:"port"`
	CorsOrigins []string `mapstructure:"cors_origins"`
	// Production refuses permissive defaults (e.g. a fallback signing key).
	Production bool `mapstructure:"production"`
}

// Auth holds token and password hashing configuration.
type Auth struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Dashboard holds the configuration for the dashboard client.
type Dashboard struct {
	BaseURL        string  `mapstructure:"base_url"`
	PageSize       int     `mapstructure:"page_size"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// ErrMissingJWTSecret is returned when production mode is enabled without a
// signing key. The process must not start in that state.
var ErrMissingJWTSecret = errors.New("auth.jwt_secret must be set in production mode")

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	viper.SetDefault("database.dsn", "trades.db")
	viper.SetDefault("auth.token_ttl_hours", 24)
	viper.SetDefault("auth.bcrypt_cost", 10)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("dashboard.base_url", "http://localhost:3000")
	viper.SetDefault("dashboard.page_size", 20)
	viper.SetDefault("dashboard.rate_limit", 20) // requests per second
	viper.SetDefault("dashboard.rate_limit_burst", 5)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if config.Server.Production && config.Auth.JWTSecret == "" {
		err = ErrMissingJWTSecret
	}
	return
}
