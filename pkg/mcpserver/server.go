// Package mcpserver exposes the data space over the Model Context Protocol
// so language model agents can discover types and read entities through
// tool calls.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/iot-data-space/dataspace"
)

// serverName identifies this server to MCP clients.
const serverName = "IoTDataSpace"

const serverInstructions = `You are interacting with a data space. The data space contains objects of different types. Each object has attributes relevant to its type. Objects include a special attribute 'located_in' that indicates their location.`

const getTypesDescription = `Retrieve matching types (including their attributes) from the data space by searching type and attribute descriptions for the provided keywords. Supply a comma-separated list of keywords; matching is case-insensitive and returns full type objects.`

const readDescription = `Read a specific object or all objects of a specific type. Provide a type identifier to fetch all objects of that type, or an object identifier to fetch a single object. Optionally pass filters to narrow results by attribute values, and optionally list which attributes to include in the response. Leave attributes empty to return all fields.`

// Server wraps a data space client and exposes it via Model Context Protocol
type Server struct {
	ds     dataspace.DataSpace
	logger *slog.Logger
	server *server.MCPServer
}

// New creates a new MCP server over the given data space.
func New(ds dataspace.DataSpace, version string, logger *slog.Logger) (*Server, error) {
	if ds == nil {
		return nil, errors.New("data space is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		ds:     ds,
		logger: logger,
	}

	s.server = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(serverInstructions),
	)

	s.registerTools()

	return s, nil
}

// registerTools registers the data space tools.
func (s *Server) registerTools() {
	getTypesTool := mcp.NewTool("get_types",
		mcp.WithDescription(getTypesDescription),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Comma-separated keywords to match against type and attribute descriptions (case-insensitive)."),
		),
	)
	s.server.AddTool(getTypesTool, s.handleGetTypes)

	readTool := mcp.NewTool("read",
		mcp.WithDescription(readDescription),
		mcp.WithString("type_id",
			mcp.Description("The type identifier to filter objects by type"),
		),
		mcp.WithString("object_id",
			mcp.Description("The object identifier to fetch a specific object"),
		),
		mcp.WithString("attributes",
			mcp.Description("Comma-separated attribute names to include in the response; omit or empty for all."),
		),
		mcp.WithArray("filters",
			mcp.Description("List of filter strings like ['attribute operator value', ...]. Examples: ['temperature>30', 'located_in==building1', 'consumption<=20']. Operators: ==, !=, <, <=, >, >=, contains (values may be quoted)."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
	s.server.AddTool(readTool, s.handleRead)
}

// handleGetTypes handles get_types tool calls
func (s *Server) handleGetTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keywords, err := request.RequireString("keywords")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("get_types called", "keywords", keywords)

	return jsonResult(s.ds.ResolveTypes(keywords))
}

// handleRead handles read tool calls
func (s *Server) handleRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := dataspace.ReadRequest{
		TypeID:     request.GetString("type_id", ""),
		ObjectID:   request.GetString("object_id", ""),
		Attributes: request.GetString("attributes", ""),
		Filters:    request.GetStringSlice("filters", nil),
	}

	s.logger.Debug("read called",
		"type_id", req.TypeID,
		"object_id", req.ObjectID,
		"attributes", req.Attributes,
		"filters", req.Filters,
	)

	result, err := s.ds.Read(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}

// jsonResult encodes v as the tool's text payload.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// Serve runs the MCP server over stdio until the client disconnects.
func (s *Server) Serve() error {
	s.logger.Info("starting MCP server on stdio", "name", serverName)
	return server.ServeStdio(s.server)
}
