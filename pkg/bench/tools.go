package bench

import "github.com/iot-data-space/dataspace/pkg/llm"

// Tool names dispatched by the agent loop.
const (
	toolGetTypes = "get_types"
	toolRead     = "read"
)

// Tools returns the tool declarations handed to the model. They mirror the
// MCP tool surface so benchmark results transfer to MCP-connected agents.
func Tools() []llm.Tool {
	return []llm.Tool{
		{
			Name:        toolGetTypes,
			Description: `Retrieve matching types (including their attributes) from the data space by searching type and attribute descriptions for the provided keywords. Supply a comma-separated list of keywords; matching is case-insensitive and returns full type objects.`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"keywords": map[string]any{
						"type":        "string",
						"description": "Comma-separated keywords to match against type and attribute descriptions (case-insensitive).",
					},
				},
				"required": []string{"keywords"},
			},
		},
		{
			Name:        toolRead,
			Description: `Read a specific object or all objects of a specific type. Provide a type identifier to fetch all objects of that type, or an object identifier to fetch a single object. Optionally pass filters to narrow results by attribute values, and optionally list which attributes to include in the response. Leave attributes empty to return all fields.`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type_id": map[string]any{
						"type":        "string",
						"description": "The type identifier to filter objects by type",
					},
					"object_id": map[string]any{
						"type":        "string",
						"description": "The object identifier to fetch a specific object",
					},
					"attributes": map[string]any{
						"type":        "string",
						"description": "Comma-separated attribute names to include in the response; omit or empty for all.",
					},
					"filters": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "List of filter strings like ['attribute operator value', ...]. Examples: ['temperature>30', 'located_in==building1', 'consumption<=20']. Operators: ==, !=, <, <=, >, >=, contains (values may be quoted).",
					},
				},
			},
		},
	}
}
