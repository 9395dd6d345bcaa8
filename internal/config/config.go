// Package config handles application configuration management.
// It supports YAML files and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API       APIConfig       `mapstructure:"api" yaml:"api"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Anthropic AnthropicConfig `mapstructure:"anthropic" yaml:"anthropic"`
}

// APIConfig holds backend connection settings
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	BotName        string `mapstructure:"bot_name" yaml:"bot_name"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuthConfig holds credential freshness settings
type AuthConfig struct {
	// MaxCredentialAge is the client-side freshness window in seconds. It
	// should track the backend's signature-expiry window; keep the two in
	// sync when either changes.
	MaxCredentialAge int64 `mapstructure:"max_credential_age" yaml:"max_credential_age"`
}

// CacheConfig holds the optional Redis media cache settings
type CacheConfig struct {
	RedisAddr     string `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" yaml:"redis_db"`
	TTLHours      int    `mapstructure:"ttl_hours" yaml:"ttl_hours"`
}

// Enabled reports whether a cache backend is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// AnthropicConfig holds Anthropic API settings for the describe command
type AnthropicConfig struct {
	APIKey    string `mapstructure:"api_key" yaml:"api_key"`
	Model     string `mapstructure:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// A .env file in the working directory supplies env vars during
	// development; missing is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.bot_name", "StickerGallery")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("auth.max_credential_age", 600)
	v.SetDefault("cache.ttl_hours", 168)
	v.SetDefault("anthropic.model", "claude-3-haiku-20240307")
	v.SetDefault("anthropic.max_tokens", 100)

	// Determine config directory
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}

	// Configure viper to read from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults and env vars
	}

	// Environment variable overrides
	v.SetEnvPrefix("STICKERGALLERY")
	v.AutomaticEnv()

	// Specific env var bindings
	_ = v.BindEnv("api.base_url", "STICKER_API_BASE_URL")
	_ = v.BindEnv("cache.redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("cache.redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	// Check for STICKERGALLERY_CONFIG_DIR env var (Docker can set this)
	if configDir := os.Getenv("STICKERGALLERY_CONFIG_DIR"); configDir != "" {
		return configDir, nil
	}

	// Use XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "stickergallery"), nil
	}

	// Fall back to ~/.config/stickergallery
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "stickergallery"), nil
}
