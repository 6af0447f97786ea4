// Package dataspace provides a query-translation layer over an NGSI-LD
// entity store.
//
// A data space holds typed objects in a context broker. This library lets
// a caller, human or agent, discover the declared types by keyword and
// read objects using a simplified filter syntax, translating both into the
// broker's native query protocol. The broker itself stays authoritative:
// responses pass through undecorated.
//
// # Basic Usage
//
// Create a client from a catalog and a store:
//
//	cat, err := catalog.Load("data/data-space.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	st, err := store.NewClient(store.Config{BrokerURL: "http://localhost:1026"}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := dataspace.NewClient(st, cat, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Discovering Types
//
// ResolveTypes matches comma-separated keywords against type and attribute
// descriptions, case-insensitively, in catalog order:
//
//	for _, entry := range client.ResolveTypes("temperature,humidity") {
//		fmt.Printf("%s: %s\n", entry.Name, entry.Description)
//	}
//
// # Reading Objects
//
// Read scopes a retrieval by type or by object identifier, never both, and
// narrows it with filters written as "<attribute><operator><value>":
//
//	result, err := client.Read(ctx, dataspace.ReadRequest{
//		TypeID:  "plug",
//		Filters: []string{"consumption>0.5", "located_in==building1"},
//	})
//
// Supported operators, in match priority order: ==, !=, <=, >=, <, >,
// contains. Values that are neither numeric nor already quoted are wrapped
// in double quotes before being sent to the broker.
//
// # Error Handling
//
// The library reports failures as typed errors:
//
//   - *ConflictingSelectorsError: both TypeID and ObjectID were supplied
//   - *UnknownTypeError: TypeID names a type the catalog does not declare
//   - *query.InvalidFilterError: a filter contains no recognized operator
//   - *store.UnavailableError: the broker could not be reached or answered garbage
//
// The first three are detected before any store call is made.
//
// # Architecture
//
//   - pkg/catalog: type catalog loading and keyword resolution
//   - pkg/query: filter normalization into the broker's query grammar
//   - pkg/store: the NGSI-LD protocol client and the Store interface
//   - pkg/mcpserver: the agent-facing MCP tool surface
//   - pkg/server: the REST facade
//
// The Client depends only on the Store interface, so tests and alternate
// transports can substitute their own store implementations.
package dataspace
