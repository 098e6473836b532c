package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	nuts "github.com/vaudience/go-nuts"
)

// DevTokenSecret is the placeholder signing secret used when no secret is
// configured. It is only acceptable for local development; Load warns loudly
// when it is left in place.
const DevTokenSecret = "agro-techfields-dev-secret-change-me"

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	ImageStore ImageStoreConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	AppDB PostgresConfig `mapstructure:"postgres_app"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type AuthConfig struct {
	// TokenSecret signs issued tokens (HS256). Must be overridden outside
	// local development.
	TokenSecret   string        `mapstructure:"token_secret"`
	TokenValidity time.Duration `mapstructure:"token_validity"`
	// LegacyHeader is the pre-standardization token header still accepted
	// alongside Authorization: Bearer.
	LegacyHeader   string `mapstructure:"legacy_header"`
	LegacySentinel string `mapstructure:"legacy_sentinel"`
}

type ImageStoreConfig struct {
	MaxImageSize     int64    `mapstructure:"max_image_size"`
	AllowedMimeTypes []string `mapstructure:"allowed_mime_types"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("ISLEHUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	if config.Auth.TokenSecret == DevTokenSecret {
		nuts.L.Warnf("[Config] auth.token_secret is the development placeholder; set ISLEHUB_AUTH__TOKEN_SECRET before exposing this service")
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")
	viper.SetDefault("server.log_level", "info")

	// Database defaults
	viper.SetDefault("database.postgres_app.sslmode", "disable")

	// Auth defaults
	viper.SetDefault("auth.token_secret", DevTokenSecret)
	viper.SetDefault("auth.token_validity", "24h")
	viper.SetDefault("auth.legacy_header", "X-Auth-Token")
	viper.SetDefault("auth.legacy_sentinel", "$")

	// Image store defaults
	viper.SetDefault("imagestore.max_image_size", 10*1024*1024) // 10MB
	viper.SetDefault("imagestore.allowed_mime_types", []string{"image/jpeg", "image/png"})
}

func validateConfig(config *Config) error {
	if config.Database.AppDB.Host == "" {
		return fmt.Errorf("postgres app host is required")
	}
	if config.Auth.TokenSecret == "" {
		return fmt.Errorf("auth token secret is required")
	}
	if config.Auth.TokenValidity <= 0 {
		return fmt.Errorf("auth token validity must be positive")
	}
	return nil
}
