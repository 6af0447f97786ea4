// Package store implements the entity store protocol: the retrieval
// interface the query dispatcher depends on, and an HTTP client speaking
// the NGSI-LD entities API of a context broker.
package store

import "context"

// Defaults for a local broker deployment.
const (
	// DefaultBrokerURL is the base URL of a locally running context broker.
	DefaultBrokerURL = "http://localhost:1026"

	// DefaultContextURL names the JSON-LD vocabulary used to interpret
	// entity attributes.
	DefaultContextURL = "https://iot-data-space.github.io/context/context/mcp.jsonld"
)

// Params carries the query parameters of one retrieval request.
// Zero-value fields are omitted from the wire request entirely, so the
// store sees a clean parameter set.
type Params struct {
	// Type filters entities by type name.
	Type string
	// ID selects a single entity by identifier.
	ID string
	// Query is a normalized filter expression in the store's query grammar.
	Query string
	// Attrs is a comma-separated list of attribute names to project.
	Attrs string
}

// Store is the retrieval side of the entity store protocol.
type Store interface {
	// QueryEntities issues a single retrieval request and returns the
	// decoded response body, list or object, unmodified.
	QueryEntities(ctx context.Context, params Params) (any, error)
}

// Creator is the write side of the entity store protocol, implemented by
// stores that accept new entities. Kept separate from Store because the
// dispatcher never writes.
type Creator interface {
	// CreateEntity registers a new entity with the store.
	CreateEntity(ctx context.Context, entity any) error
}
