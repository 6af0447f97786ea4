package logger_test

import (
	"log/slog"
	"os"

	"github.com/iot-data-space/dataspace/pkg/logger"
)

func ExampleNewDefaultLogger() {
	// Create a logger with default settings
	log := logger.NewDefaultLogger(slog.LevelDebug)

	// Log different levels
	log.Debug("This is a debug message")
	log.Info("This is an info message")
	log.Info("Seeded entity store with items") // Will be green in terminal
	log.Warn("This is a warning message")      // Will be yellow in terminal
	log.Error("This is an error message")      // Will be red in terminal
}

func ExampleNewColorHandler() {
	// Create a handler with a custom level and writer
	handler := logger.NewColorHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	log := slog.New(handler)

	// Log with attributes
	log.Info("Processing read request", "type_id", "plug", "filters", 2)
	log.Info("Entity store answered", "entities", 42, "duration", "120ms") // Green
	log.Warn("Catalog lookup missed", "type_id", "hygrometer")             // Yellow
	log.Error("Broker connection failed", "error", "timeout", "attempt", 1)
}
