package dataspace

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iot-data-space/dataspace/pkg/config"
	"github.com/iot-data-space/dataspace/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the data space HTTP server",
	Long: `Start the HTTP server that exposes the data space over REST.

The server provides endpoints for:
- Resolving candidate types from keywords
- Reading entities by type or id with optional filters
- Health checks and Prometheus metrics

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
	serveMode string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server-specific flags
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Server host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Server port")
	serveCmd.Flags().StringVar(&serveMode, "mode", "debug", "Server mode (debug, release, test)")

	// Store and catalog flags
	serveCmd.Flags().String("broker-url", "", "Entity store base URL")
	serveCmd.Flags().String("context-url", "", "JSON-LD context URL sent with store requests")
	serveCmd.Flags().String("catalog-path", "", "Path to the type catalog")

	// Telemetry flags
	serveCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for telemetry (errors)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrideServeFlags(cmd, cfg)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	log, closeTelemetry := newLogger(cfg)
	defer closeTelemetry()

	ds, st, err := openDataSpace(cfg, log)
	if err != nil {
		return err
	}

	srv := server.New(cfg, ds, st, log)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		log.Info("server stopped gracefully")
		return nil
	}
}

func overrideServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serveMode
	}

	if cmd.Flags().Changed("broker-url") {
		cfg.Broker.URL, _ = cmd.Flags().GetString("broker-url")
	}
	if cmd.Flags().Changed("context-url") {
		cfg.Broker.ContextURL, _ = cmd.Flags().GetString("context-url")
	}
	if cmd.Flags().Changed("catalog-path") {
		cfg.Catalog.Path, _ = cmd.Flags().GetString("catalog-path")
	}

	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}
