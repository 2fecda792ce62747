package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	portssvc "github.com/relatecrm/relate_crm_app/internal/core/ports/services"
	"github.com/relatecrm/relate_crm_app/internal/dto"
	"github.com/relatecrm/relate_crm_app/internal/middleware"
)

// entityHandler handles HTTP requests for CRM records and their field values.
type entityHandler struct {
	entityService       portssvc.EntitySvcFacade
	registrationService portssvc.FieldRegistrationSvcFacade
}

// newEntityHandler creates a new entityHandler.
func newEntityHandler(es portssvc.EntitySvcFacade, rs portssvc.FieldRegistrationSvcFacade) *entityHandler {
	return &entityHandler{
		entityService:       es,
		registrationService: rs,
	}
}

// RegisterEntityRoutes registers routes related to entities and their custom fields.
func RegisterEntityRoutes(rg *gin.RouterGroup, es portssvc.EntitySvcFacade, rs portssvc.FieldRegistrationSvcFacade) {
	h := newEntityHandler(es, rs)

	entities := rg.Group("/modules/:module/entities")
	{
		entities.POST("", h.createEntity)
		entities.GET("/:entityID", h.getEntity)
		entities.GET("/:entityID/fields", h.getEntityFields)
		entities.POST("/:entityID/fields", h.attachFieldValue)
		entities.PUT("/:entityID/fields/order", h.reorderFields)
	}
}

// createEntity godoc
// @Summary Create a CRM record
// @Description Creates a record in the named module with opaque attributes and optional custom fields
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   module path string true "Module name (accounts, contacts, deals, ...)"
// @Param   entity body dto.CreateEntityRequest true "Record attributes"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown module"
// @Failure 500 {object} map[string]string "Failed to create record"
// @Security BearerAuth
// @Router /modules/{module}/entities [post]
func (h *entityHandler) createEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	module := c.Param("module")

	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("module", module))
	logger.Info("Received request to create entity")

	entity, err := h.entityService.CreateEntity(c.Request.Context(), module, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating entity", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create entity in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create record"})
		}
		return
	}

	logger.Info("Entity created successfully", slog.String("entity_id", entity.EntityID))
	c.JSON(http.StatusCreated, dto.ToEntityResponse(entity))
}

// getEntity godoc
// @Summary Get a CRM record
// @Description Retrieves one record by module and id
// @Tags entities
// @Produce  json
// @Param   module path string true "Module name"
// @Param   entityID path string true "Record ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Failed to retrieve record"
// @Security BearerAuth
// @Router /modules/{module}/entities/{entityID} [get]
func (h *entityHandler) getEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	module := c.Param("module")
	entityID := c.Param("entityID")

	logger = logger.With(slog.String("module", module), slog.String("entity_id", entityID))

	entity, err := h.entityService.GetEntity(c.Request.Context(), module, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entity not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		} else {
			logger.Error("Failed to get entity from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve record"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}

// getEntityFields godoc
// @Summary Get a record's field view
// @Description Returns the resolved display order and the record's current custom-field values
// @Tags entities
// @Produce  json
// @Param   module path string true "Module name"
// @Param   entityID path string true "Record ID"
// @Success 200 {object} dto.EntityFieldsResponse
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Failed to resolve fields"
// @Security BearerAuth
// @Router /modules/{module}/entities/{entityID}/fields [get]
func (h *entityHandler) getEntityFields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	module := c.Param("module")
	entityID := c.Param("entityID")

	logger = logger.With(slog.String("module", module), slog.String("entity_id", entityID))

	fields, err := h.entityService.GetEntityFields(c.Request.Context(), module, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entity not found for field view")
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		} else {
			logger.Error("Failed to resolve entity fields", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve fields"})
		}
		return
	}

	c.JSON(http.StatusOK, fields)
}

// attachFieldValue godoc
// @Summary Attach a custom-field value to a record
// @Description Sets one field's value on a record, inserting the field into the display order at the requested position
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   module path string true "Module name"
// @Param   entityID path string true "Record ID"
// @Param   value body dto.AttachFieldValueRequest true "Field name, value and optional position"
// @Success 200 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input or value/type mismatch"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Failed to attach field value"
// @Security BearerAuth
// @Router /modules/{module}/entities/{entityID}/fields [post]
func (h *entityHandler) attachFieldValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	module := c.Param("module")
	entityID := c.Param("entityID")

	var req dto.AttachFieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AttachFieldValue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("module", module), slog.String("entity_id", entityID), slog.String("field_name", req.FieldName))
	logger.Info("Received request to attach field value")

	entity, err := h.registrationService.AttachFieldValue(c.Request.Context(), module, entityID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entity not found for attach")
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error attaching field value", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to attach field value in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach field value"})
		}
		return
	}

	logger.Info("Field value attached successfully")
	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}

// reorderFields godoc
// @Summary Reorder a record's fields
// @Description Persists a caller-supplied display sequence for the record's fields
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   module path string true "Module name"
// @Param   entityID path string true "Record ID"
// @Param   order body dto.ReorderFieldsRequest true "New field order"
// @Success 200 {object} dto.FieldOrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to reorder fields"
// @Security BearerAuth
// @Router /modules/{module}/entities/{entityID}/fields/order [put]
func (h *entityHandler) reorderFields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	module := c.Param("module")
	entityID := c.Param("entityID")

	var req dto.ReorderFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReorderFields", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("module", module), slog.String("entity_id", entityID))
	logger.Info("Received request to reorder fields", slog.Int("field_count", len(req.FieldOrder)))

	if err := h.registrationService.ReorderFields(c.Request.Context(), module, entityID, req.FieldOrder); err != nil {
		logger.Error("Failed to reorder fields in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder fields"})
		return
	}

	logger.Info("Fields reordered successfully")
	c.JSON(http.StatusOK, dto.FieldOrderResponse{
		Module:     module,
		EntityID:   entityID,
		FieldOrder: req.FieldOrder,
	})
}
