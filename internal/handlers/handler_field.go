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

// fieldHandler handles HTTP requests related to custom-field definitions.
type fieldHandler struct {
	fieldService        portssvc.FieldDefinitionSvcFacade
	registrationService portssvc.FieldRegistrationSvcFacade
}

// newFieldHandler creates a new fieldHandler.
func newFieldHandler(fs portssvc.FieldDefinitionSvcFacade, rs portssvc.FieldRegistrationSvcFacade) *fieldHandler {
	return &fieldHandler{
		fieldService:        fs,
		registrationService: rs,
	}
}

// RegisterFieldRoutes registers routes related to field definitions.
func RegisterFieldRoutes(rg *gin.RouterGroup, fs portssvc.FieldDefinitionSvcFacade, rs portssvc.FieldRegistrationSvcFacade) {
	h := newFieldHandler(fs, rs)

	fields := rg.Group("/fields")
	{
		fields.POST("", h.registerField)
		fields.GET("", h.listFields)
		fields.PUT("/:fieldID", h.updateField)
		fields.DELETE("/:fieldID", h.removeField)
	}
}

// registerField godoc
// @Summary Register a custom field
// @Description Creates a custom-field definition for a module; rejects duplicate (module, name) pairs
// @Tags fields
// @Accept  json
// @Produce  json
// @Param   field body dto.RegisterFieldRequest true "Field definition"
// @Success 201 {object} dto.FieldResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Field already exists"
// @Failure 500 {object} map[string]string "Failed to register field"
// @Security BearerAuth
// @Router /fields [post]
func (h *fieldHandler) registerField(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterField", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("module", req.Module), slog.String("field_name", req.Name))
	logger.Info("Received request to register field")

	def, err := h.registrationService.RegisterField(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate field registration", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error registering field", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register field in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register field"})
		}
		return
	}

	logger.Info("Field registered successfully", slog.String("field_id", def.FieldID))
	c.JSON(http.StatusCreated, dto.ToFieldResponse(def))
}

// listFields godoc
// @Summary List custom-field definitions
// @Description Retrieves field definitions, optionally filtered to one module, sorted by display order
// @Tags fields
// @Produce  json
// @Param   module query string false "Module to filter by"
// @Success 200 {object} dto.ListFieldsResponse
// @Failure 500 {object} map[string]string "Failed to list fields"
// @Security BearerAuth
// @Router /fields [get]
func (h *fieldHandler) listFields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFieldsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListFields", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	defs, err := h.fieldService.ListFields(c.Request.Context(), params.Module)
	if err != nil {
		if errors.Is(err, apperrors.ErrStorageUnavailable) {
			logger.Error("Field store unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Field store unavailable"})
		} else {
			logger.Error("Failed to list fields from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fields"})
		}
		return
	}

	logger.Info("Fields listed successfully", slog.Int("count", len(defs)), slog.String("module", params.Module))
	c.JSON(http.StatusOK, dto.ToListFieldsResponse(defs))
}

// updateField godoc
// @Summary Update a field definition
// @Description Merges a patch (label, type, order) onto a stored field definition
// @Tags fields
// @Accept  json
// @Produce  json
// @Param   fieldID path string true "Field definition ID"
// @Param   field body dto.UpdateFieldRequest true "Fields to update"
// @Success 200 {object} dto.FieldResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Field not found"
// @Failure 500 {object} map[string]string "Failed to update field"
// @Security BearerAuth
// @Router /fields/{fieldID} [put]
func (h *fieldHandler) updateField(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fieldID := c.Param("fieldID")

	var req dto.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateField", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("field_id", fieldID))
	logger.Info("Received request to update field")

	def, err := h.fieldService.UpdateField(c.Request.Context(), fieldID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Field not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating field", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update field in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update field"})
		}
		return
	}

	logger.Info("Field updated successfully")
	c.JSON(http.StatusOK, dto.ToFieldResponse(def))
}

// removeField godoc
// @Summary Remove a field definition
// @Description Deletes the definition row only; values already stored on entities are left in place
// @Tags fields
// @Produce  json
// @Param   fieldID path string true "Field definition ID"
// @Param   module query string false "Module the field belongs to"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Field not found"
// @Failure 500 {object} map[string]string "Failed to remove field"
// @Security BearerAuth
// @Router /fields/{fieldID} [delete]
func (h *fieldHandler) removeField(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fieldID := c.Param("fieldID")
	module := c.Query("module")

	logger = logger.With(slog.String("field_id", fieldID), slog.String("module", module))
	logger.Info("Received request to remove field")

	if err := h.registrationService.RemoveField(c.Request.Context(), module, fieldID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Field not found for removal")
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
		} else {
			logger.Error("Failed to remove field in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove field"})
		}
		return
	}

	logger.Info("Field removed successfully")
	c.Status(http.StatusNoContent)
}
