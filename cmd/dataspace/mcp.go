package dataspace

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iot-data-space/dataspace/pkg/config"
	"github.com/iot-data-space/dataspace/pkg/mcpserver"
	"github.com/iot-data-space/dataspace/pkg/server/handlers"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol (MCP) server",
	Long: `Start the Model Context Protocol (MCP) server over stdio.

The MCP server provides tools for:
- Resolving data space types from keywords (get_types)
- Reading objects by type or id with optional filters (read)

It is designed to work with MCP clients like Claude Desktop or other
compatible applications. The protocol runs on stdout; all logging goes
to stderr.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	// Set up specific environment variable bindings to maintain
	// compatibility with existing environment variable names
	viper.BindEnv("broker.url", "BROKER_URL")
	viper.BindEnv("broker.context_url", "CONTEXT_URL")
	viper.BindEnv("catalog.path", "CATALOG_PATH")

	mcpCmd.Flags().String("broker-url", "", "Entity store base URL")
	mcpCmd.Flags().String("context-url", "", "JSON-LD context URL sent with store requests")
	mcpCmd.Flags().String("catalog-path", "", "Path to the type catalog")

	// Bind flags to viper for configuration
	viper.BindPFlag("broker.url", mcpCmd.Flags().Lookup("broker-url"))
	viper.BindPFlag("broker.context_url", mcpCmd.Flags().Lookup("context-url"))
	viper.BindPFlag("catalog.path", mcpCmd.Flags().Lookup("catalog-path"))
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, closeTelemetry := newLogger(cfg)
	defer closeTelemetry()

	ds, _, err := openDataSpace(cfg, log)
	if err != nil {
		return err
	}

	srv, err := mcpserver.New(ds, handlers.Version, log)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return srv.Serve()
}
