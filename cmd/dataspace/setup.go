package dataspace

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/iot-data-space/dataspace"
	"github.com/iot-data-space/dataspace/pkg/catalog"
	"github.com/iot-data-space/dataspace/pkg/config"
	"github.com/iot-data-space/dataspace/pkg/llm"
	"github.com/iot-data-space/dataspace/pkg/logger"
	"github.com/iot-data-space/dataspace/pkg/store"
	"github.com/iot-data-space/dataspace/pkg/telemetry"
)

// newLogger builds the process logger from config. When a telemetry path
// is configured the colored handler is wrapped so warnings and errors are
// also persisted to parquet files; the returned closer flushes them on
// shutdown.
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	colorHandler := logger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: logger.ParseLevel(cfg.Log.Level),
	})

	if cfg.Telemetry.ParquetPath == "" {
		return slog.New(colorHandler), func() {}
	}

	parquetHandler, err := telemetry.NewParquetHandler(colorHandler, cfg.Telemetry.ParquetPath)
	if err != nil {
		log := slog.New(colorHandler)
		log.Warn("failed to initialize error tracking", "error", err)
		return log, func() {}
	}

	log := slog.New(parquetHandler)
	log.Info("error tracking enabled", "path", cfg.Telemetry.ParquetPath)
	return log, func() {
		if err := parquetHandler.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to flush telemetry:", err)
		}
	}
}

// newStoreClient builds the entity store client from config.
func newStoreClient(cfg *config.Config, log *slog.Logger) (*store.Client, error) {
	st, err := store.NewClient(store.Config{
		BrokerURL:  cfg.Broker.URL,
		ContextURL: cfg.Broker.ContextURL,
		Timeout:    time.Duration(cfg.Broker.Timeout) * time.Second,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create entity store client: %w", err)
	}
	return st, nil
}

// openDataSpace loads the catalog and wires it with the store client into
// a data space client.
func openDataSpace(cfg *config.Config, log *slog.Logger) (*dataspace.Client, *store.Client, error) {
	st, err := newStoreClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	ds, err := dataspace.NewClient(st, cat, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create data space client: %w", err)
	}

	return ds, st, nil
}

// newLLMClient builds the model client chain: OpenAI-compatible transport,
// retries, and an optional circuit breaker.
func newLLMClient(cfg *config.Config, log *slog.Logger) (llm.Client, error) {
	if cfg.LLM.APIKey == "" && cfg.LLM.BaseURL == "" {
		return nil, fmt.Errorf("an API key (OPENAI_API_KEY) or llm.base_url is required")
	}

	llmConfig := llm.Config{
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
	}
	if cfg.LLM.Temperature > 0 {
		temperature := cfg.LLM.Temperature
		llmConfig.Temperature = &temperature
	}
	if cfg.LLM.MaxTokens > 0 {
		maxTokens := cfg.LLM.MaxTokens
		llmConfig.MaxTokens = &maxTokens
	}

	base, err := llm.NewOpenAIClient(cfg.LLM.APIKey, llmConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	// Wrap with retry client for automatic retry on transient errors
	var client llm.Client = llm.NewRetryClient(base, llm.DefaultRetryConfig())

	if cfg.CircuitBreaker.Enabled {
		client = llm.NewCircuitBreakerClient(client, &llm.BreakerConfig{
			MaxRequests:         cfg.CircuitBreaker.MaxRequests,
			Timeout:             time.Duration(cfg.CircuitBreaker.Timeout) * time.Second,
			ConsecutiveFailures: cfg.CircuitBreaker.ConsecutiveFailures,
		}, log, cfg.LLM.Model)
	}

	return client, nil
}
