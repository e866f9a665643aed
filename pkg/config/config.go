package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/waveforge/generator-api/pkg/errors"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("WAVEFORGE")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
			// Config file doesn't exist, which is fine - we'll use defaults
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return apperrors.Newf(apperrors.ErrCodeConfigInvalid, "invalid server port: %d", port)
	}

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		fmt.Println("Warning: No database path configured")
	}

	if err := validateAPITokens(); err != nil {
		return err
	}

	if !viper.GetBool("suno.enabled") && !viper.GetBool("mureka.enabled") {
		return apperrors.New(apperrors.ErrCodeConfigInvalid, "at least one provider must be enabled")
	}

	// Auto-correct invalid polling settings
	if viper.GetInt("generation.max_poll_attempts") <= 0 {
		viper.Set("generation.max_poll_attempts", 60)
	}
	if viper.GetDuration("generation.poll_interval") <= 0 {
		viper.Set("generation.poll_interval", 5*time.Second)
	}

	return nil
}

// validateAPITokens validates that API tokens are not using placeholder values
func validateAPITokens() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	// List of placeholder values that shouldn't be used
	placeholders := []string{
		"YOUR_TOKEN_HERE",
		"YOUR_API_TOKEN",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	for _, provider := range []string{"suno", "mureka"} {
		if !viper.GetBool(provider + ".enabled") {
			continue
		}
		token := viper.GetString(provider + ".api_token")
		for _, placeholder := range placeholders {
			if token == placeholder {
				if isProduction {
					return apperrors.Newf(apperrors.ErrCodeConfigInvalid, "invalid %s API token: cannot use placeholder values in production", provider)
				}
				fmt.Printf("Warning: %s API token is using a placeholder value\n", provider)
				break
			}
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.Newf(apperrors.ErrCodeConfigInvalid, "invalid server port: %d", c.Server.Port)
	}

	if !c.Suno.Enabled && !c.Mureka.Enabled {
		return apperrors.New(apperrors.ErrCodeConfigInvalid, "at least one provider must be enabled")
	}

	if c.Generation.MaxPollAttempts <= 0 {
		c.Generation.MaxPollAttempts = 60
	}

	if c.Generation.PollInterval <= 0 {
		c.Generation.PollInterval = 5 * time.Second
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/tracks.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.enable_wal", true)
	viper.SetDefault("database.enable_foreign_keys", true)
	viper.SetDefault("database.log_queries", false)

	// Suno defaults
	viper.SetDefault("suno.enabled", true)
	viper.SetDefault("suno.base_url", "https://studio-api.suno.ai")
	viper.SetDefault("suno.user_agent", "WaveforgeGeneratorAPI/1.0")
	viper.SetDefault("suno.timeout", 10*time.Second)
	viper.SetDefault("suno.requests_per_minute", 60)
	viper.SetDefault("suno.burst_size", 5)
	viper.SetDefault("suno.weight", 1)

	// Mureka defaults
	viper.SetDefault("mureka.enabled", true)
	viper.SetDefault("mureka.base_url", "https://api.mureka.ai")
	viper.SetDefault("mureka.user_agent", "WaveforgeGeneratorAPI/1.0")
	viper.SetDefault("mureka.timeout", 10*time.Second)
	viper.SetDefault("mureka.requests_per_minute", 60)
	viper.SetDefault("mureka.burst_size", 5)
	viper.SetDefault("mureka.weight", 1)

	// Generation defaults
	viper.SetDefault("generation.poll_interval", 5*time.Second)
	viper.SetDefault("generation.max_poll_attempts", 60)
	viper.SetDefault("generation.transient_retries", 3)
	viper.SetDefault("generation.credits_timeout", 10*time.Second)
	viper.SetDefault("generation.selection_seed", 0)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization", "X-User-ID"})
	viper.SetDefault("security.enable_request_id", true)
	viper.SetDefault("security.enable_recovery", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
}
