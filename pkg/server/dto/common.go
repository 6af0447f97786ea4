// Package dto defines the wire shapes of the REST facade.
package dto

import (
	"github.com/iot-data-space/dataspace/pkg/catalog"
)

// EntitiesQuery binds the query parameters of GET /v1/entities. The filter
// parameter repeats, one expression per occurrence.
type EntitiesQuery struct {
	TypeID     string   `form:"type_id"`
	ObjectID   string   `form:"object_id"`
	Attributes string   `form:"attrs"`
	Filters    []string `form:"filter"`
}

// TypesResponse is the body of GET /v1/types.
type TypesResponse struct {
	Types []catalog.TypeEntry `json:"types"`
	Count int                 `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
