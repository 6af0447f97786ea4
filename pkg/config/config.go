// Package config loads the service configuration from defaults, an
// optional config file, and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/iot-data-space/dataspace/pkg/store"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Broker configuration
	Broker BrokerConfig `mapstructure:"broker"`

	// Catalog configuration
	Catalog CatalogConfig `mapstructure:"catalog"`

	// LLM configuration
	LLM LLMConfig `mapstructure:"llm"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`

	// Bench configuration
	Bench BenchConfig `mapstructure:"bench"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// BrokerConfig holds entity store configuration
type BrokerConfig struct {
	URL        string `mapstructure:"url"`
	ContextURL string `mapstructure:"context_url"`
	Timeout    int    `mapstructure:"timeout"` // in seconds
}

// CatalogConfig holds type catalog configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LLMConfig holds language model configuration
type LLMConfig struct {
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	MaxRequests         uint32 `mapstructure:"max_requests"`
	Timeout             int    `mapstructure:"timeout"` // in seconds
	ConsecutiveFailures uint32 `mapstructure:"consecutive_failures"`
}

// BenchConfig holds benchmark harness configuration
type BenchConfig struct {
	PromptsPath string `mapstructure:"prompts_path"`
	MaxTurns    int    `mapstructure:"max_turns"`
	OutputDir   string `mapstructure:"output_dir"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Broker defaults
	viper.SetDefault("broker.url", store.DefaultBrokerURL)
	viper.SetDefault("broker.context_url", store.DefaultContextURL)
	viper.SetDefault("broker.timeout", 30)

	// Catalog defaults
	viper.SetDefault("catalog.path", "data/data-space.json")

	// LLM defaults
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.temperature", 0.0)
	viper.SetDefault("llm.max_tokens", 0)

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 1)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.consecutive_failures", 5)

	// Bench defaults
	viper.SetDefault("bench.prompts_path", "data/prompts.json")
	viper.SetDefault("bench.max_turns", 10)
	viper.SetDefault("bench.output_dir", "bench_results")

	// Telemetry defaults
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("telemetry.parquet_path", fmt.Sprintf("%s/.dataspace/telemetry", home))
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	// Broker settings
	if url := os.Getenv("BROKER_URL"); url != "" {
		config.Broker.URL = url
	}
	if url := os.Getenv("CONTEXT_URL"); url != "" {
		config.Broker.ContextURL = url
	}

	// Catalog settings
	if path := os.Getenv("CATALOG_PATH"); path != "" {
		config.Catalog.Path = path
	}

	// LLM settings
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if model := os.Getenv("MODEL_NAME"); model != "" {
		config.LLM.Model = model
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	// Telemetry settings
	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
}
