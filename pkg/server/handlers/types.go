package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iot-data-space/dataspace"
	"github.com/iot-data-space/dataspace/pkg/server/dto"
)

// TypesHandler handles type resolution requests
type TypesHandler struct {
	ds dataspace.DataSpace
}

// NewTypesHandler creates a new types handler
func NewTypesHandler(ds dataspace.DataSpace) *TypesHandler {
	return &TypesHandler{
		ds: ds,
	}
}

// List handles GET /v1/types - resolves catalog types by keyword. Without
// a keywords parameter it returns the full catalog.
func (h *TypesHandler) List(c *gin.Context) {
	keywords, hasKeywords := c.GetQuery("keywords")

	var types = h.ds.Catalog().Types()
	if hasKeywords {
		types = h.ds.ResolveTypes(keywords)
	}

	c.JSON(http.StatusOK, dto.TypesResponse{
		Types: types,
		Count: len(types),
	})
}
