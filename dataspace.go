package dataspace

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/iot-data-space/dataspace/pkg/catalog"
	"github.com/iot-data-space/dataspace/pkg/query"
	"github.com/iot-data-space/dataspace/pkg/store"
)

// DataSpace is the main interface for querying a data space: resolving
// candidate types from keywords and reading entities through the store.
type DataSpace interface {
	// ResolveTypes returns every catalog type whose description, or any of
	// whose attribute descriptions, contains one of the comma-separated
	// keywords. Blank input yields an empty result, never an error.
	ResolveTypes(keywords string) []catalog.TypeEntry

	// Read retrieves entities from the store, translating the request's
	// simplified filter syntax into the store's query grammar.
	Read(ctx context.Context, req ReadRequest) (any, error)

	// Catalog returns the type catalog backing this client.
	Catalog() *catalog.Catalog
}

// ReadRequest describes a single retrieval request. At most one of TypeID
// and ObjectID may be set; with both blank the read spans the whole store.
type ReadRequest struct {
	// TypeID scopes the read to all entities of one declared type.
	TypeID string
	// ObjectID scopes the read to a single entity.
	ObjectID string
	// Attributes optionally lists, comma-separated, the attributes to
	// include in the response. Blank returns all attributes.
	Attributes string
	// Filters optionally narrows results. Each entry is one expression in
	// the simplified filter syntax, e.g. "consumption>0.5" or
	// "located_in == building1".
	Filters []string
}

// Client is the main implementation of the DataSpace interface.
type Client struct {
	store   store.Store
	catalog *catalog.Catalog
	logger  *slog.Logger
}

var _ DataSpace = (*Client)(nil)

// NewClient creates a data space client over the given store and catalog.
// A nil logger falls back to slog.Default.
func NewClient(st store.Store, cat *catalog.Catalog, logger *slog.Logger) (*Client, error) {
	if st == nil {
		return nil, ErrNilStore
	}
	if cat == nil {
		return nil, ErrNilCatalog
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		store:   st,
		catalog: cat,
		logger:  logger,
	}, nil
}

// ResolveTypes searches the catalog's type and attribute descriptions for
// the given keywords. It is a pure lookup over the immutable catalog and
// safe for concurrent use.
func (c *Client) ResolveTypes(keywords string) []catalog.TypeEntry {
	return c.catalog.Resolve(keywords)
}

// Read validates the request, normalizes its filters, and issues exactly
// one retrieval call to the store, returning the decoded response body
// unmodified.
//
// Both selectors set fails with *ConflictingSelectorsError; a type
// identifier missing from the catalog fails with *UnknownTypeError; a
// malformed filter fails with *query.InvalidFilterError. All three are
// detected before any store call. A failure from the store surfaces as
// *store.UnavailableError wrapping the cause. Read never retries; retry
// policy, if any, belongs to the store client.
func (c *Client) Read(ctx context.Context, req ReadRequest) (any, error) {
	hasType := strings.TrimSpace(req.TypeID) != ""
	hasObject := strings.TrimSpace(req.ObjectID) != ""

	if hasType && hasObject {
		return nil, NewConflictingSelectorsError(req.TypeID, req.ObjectID)
	}
	if hasType && !c.catalog.Exists(req.TypeID) {
		return nil, NewUnknownTypeError(req.TypeID)
	}

	normalized, err := query.Normalize(req.Filters)
	if err != nil {
		return nil, err
	}

	var params store.Params
	if hasType {
		params.Type = req.TypeID
	}
	if hasObject {
		params.ID = req.ObjectID
	}
	if strings.TrimSpace(normalized) != "" {
		params.Query = normalized
	}
	if strings.TrimSpace(req.Attributes) != "" {
		params.Attrs = req.Attributes
	}

	c.logger.Debug("dispatching read",
		"type", params.Type,
		"id", params.ID,
		"q", params.Query,
		"attrs", params.Attrs,
	)

	result, err := c.store.QueryEntities(ctx, params)
	if err != nil {
		if errors.Is(err, &store.UnavailableError{}) {
			return nil, err
		}
		return nil, store.NewUnavailableError(err)
	}

	return result, nil
}

// Catalog returns the type catalog backing this client.
func (c *Client) Catalog() *catalog.Catalog {
	return c.catalog
}

// Store returns the underlying entity store.
func (c *Client) Store() store.Store {
	return c.store
}

var (
	// ErrNilStore is returned by NewClient when no store is provided.
	ErrNilStore = errors.New("store is required")
	// ErrNilCatalog is returned by NewClient when no catalog is provided.
	ErrNilCatalog = errors.New("catalog is required")
)
