package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/orchestrators/collection"
)

// CollectionHandlerConfig holds dependencies for a collection handler
type CollectionHandlerConfig[T collection.Record] struct {
	Service collection.Service[T]

	// NewRecord returns an empty record to decode request bodies into
	NewRecord func() T

	// DeletedMessage is returned by every delete, e.g. "Weapon deleted"
	DeletedMessage string

	Logger *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *CollectionHandlerConfig[T]) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Service == nil {
		vb.RequiredField("Service")
	}
	if c.NewRecord == nil {
		vb.RequiredField("NewRecord")
	}
	if c.DeletedMessage == "" {
		vb.RequiredField("DeletedMessage")
	}
	return vb.Build()
}

// CollectionHandler serves list, create, update and delete for one collection
type CollectionHandler[T collection.Record] struct {
	service        collection.Service[T]
	newRecord      func() T
	deletedMessage string
	logger         *zap.Logger
}

// NewCollectionHandler creates a new collection handler with the given configuration
func NewCollectionHandler[T collection.Record](cfg *CollectionHandlerConfig[T]) (*CollectionHandler[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CollectionHandler[T]{
		service:        cfg.Service,
		newRecord:      cfg.NewRecord,
		deletedMessage: cfg.DeletedMessage,
		logger:         logger,
	}, nil
}

// RegisterRoutes mounts the collection under rg
func (h *CollectionHandler[T]) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List returns every record in storage order
func (h *CollectionHandler[T]) List(c *gin.Context) {
	out, err := h.service.List(c.Request.Context(), &collection.ListInput{})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, out.Records)
}

// Get returns one record
func (h *CollectionHandler[T]) Get(c *gin.Context) {
	out, err := h.service.Get(c.Request.Context(), &collection.GetInput{ID: c.Param("id")})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, out.Record)
}

// Create appends a record and returns it with its identifier
func (h *CollectionHandler[T]) Create(c *gin.Context) {
	record, ok := h.bind(c)
	if !ok {
		return
	}

	out, err := h.service.Create(c.Request.Context(), &collection.CreateInput[T]{Record: record})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, out.Record)
}

// Update replaces the record at the path ID
func (h *CollectionHandler[T]) Update(c *gin.Context) {
	record, ok := h.bind(c)
	if !ok {
		return
	}

	out, err := h.service.Update(c.Request.Context(), &collection.UpdateInput[T]{
		ID:     c.Param("id"),
		Record: record,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, out.Record)
}

// Delete removes the record at the path ID; an unknown ID still succeeds
func (h *CollectionHandler[T]) Delete(c *gin.Context) {
	if _, err := h.service.Delete(c.Request.Context(), &collection.DeleteInput{ID: c.Param("id")}); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: h.deletedMessage})
}

func (h *CollectionHandler[T]) bind(c *gin.Context) (T, bool) {
	record := h.newRecord()
	if err := c.ShouldBindJSON(record); err != nil {
		writeError(c, h.logger, bindError(err))
		var zero T
		return zero, false
	}
	return record, true
}

// MessageResponse is a plain confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}
