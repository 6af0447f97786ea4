package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iot-data-space/dataspace"
	"github.com/iot-data-space/dataspace/pkg/query"
	"github.com/iot-data-space/dataspace/pkg/server/dto"
	"github.com/iot-data-space/dataspace/pkg/store"
)

var storeReadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "dataspace",
	Subsystem: "store",
	Name:      "read_duration_seconds",
	Help:      "Latency of entity store reads issued by the entities endpoint.",
	Buckets:   prometheus.DefBuckets,
})

// EntitiesHandler handles entity read requests
type EntitiesHandler struct {
	ds     dataspace.DataSpace
	logger *slog.Logger
}

// NewEntitiesHandler creates a new entities handler
func NewEntitiesHandler(ds dataspace.DataSpace, logger *slog.Logger) *EntitiesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntitiesHandler{
		ds:     ds,
		logger: logger,
	}
}

// List handles GET /v1/entities - reads entities by type, id, or filter.
func (h *EntitiesHandler) List(c *gin.Context) {
	var params dto.EntitiesQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	started := time.Now()
	result, err := h.ds.Read(c.Request.Context(), dataspace.ReadRequest{
		TypeID:     params.TypeID,
		ObjectID:   params.ObjectID,
		Attributes: params.Attributes,
		Filters:    params.Filters,
	})
	storeReadDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request.Context(), "entity read failed",
				"type_id", params.TypeID,
				"object_id", params.ObjectID,
				"error", err)
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// statusForError maps dispatch failures onto HTTP statuses: request
// validation problems are the caller's fault, unreachable stores are a
// gateway problem, anything else is ours.
func statusForError(err error) int {
	var filterErr *query.InvalidFilterError
	switch {
	case dataspace.IsConflictingSelectors(err),
		dataspace.IsUnknownType(err),
		errors.As(err, &filterErr):
		return http.StatusBadRequest
	case store.IsUnavailable(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
