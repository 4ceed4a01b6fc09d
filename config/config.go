package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Ranking   RankingConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog source configuration
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

// RankingConfig holds the ranking pipeline defaults
type RankingConfig struct {
	SearchTopK         int     `mapstructure:"search_top_k"`
	CartTopK           int     `mapstructure:"cart_top_k"`
	PriceTolerance     float64 `mapstructure:"price_tolerance"`
	DuplicateThreshold float64 `mapstructure:"duplicate_threshold"`
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ecomart/")

	v.SetEnvPrefix("ECOMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.path", "catalog.json")
	v.SetDefault("catalog.watch", true)

	// Ranking defaults
	v.SetDefault("ranking.search_top_k", 20)
	v.SetDefault("ranking.cart_top_k", 10)
	v.SetDefault("ranking.price_tolerance", 0.2)
	v.SetDefault("ranking.duplicate_threshold", 0.8)

	// Cache defaults
	v.SetDefault("cache.ttl", "30s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set ECOMART_CATALOG_PATH)")
	}

	if config.Ranking.PriceTolerance < 0 || config.Ranking.PriceTolerance > 0.5 {
		return fmt.Errorf("price tolerance must be in [0, 0.5], got: %v", config.Ranking.PriceTolerance)
	}

	if config.Ranking.DuplicateThreshold <= 0 || config.Ranking.DuplicateThreshold > 1 {
		return fmt.Errorf("duplicate threshold must be in (0, 1], got: %v", config.Ranking.DuplicateThreshold)
	}

	if config.Ranking.SearchTopK <= 0 || config.Ranking.CartTopK <= 0 {
		return fmt.Errorf("top-k values must be positive")
	}

	return nil
}
