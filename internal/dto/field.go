package dto

import (
	"time"

	"github.com/relatecrm/relate_crm_app/internal/core/domain"
)

// CreateFieldRequest defines the data needed to create a field definition.
type CreateFieldRequest struct {
	Module string           `json:"module" binding:"required"`
	Name   string           `json:"name" binding:"required"`
	Label  string           `json:"label"` // Optional, defaults to Name
	Type   domain.FieldType `json:"type" binding:"required,oneof=text number date"`
	Order  *int             `json:"order"` // Optional default position; appended after siblings when omitted
}

// RegisterFieldRequest is the form-facing registration payload.
type RegisterFieldRequest struct {
	Module string           `json:"module" binding:"required"`
	Name   string           `json:"name" binding:"required"`
	Type   domain.FieldType `json:"type" binding:"required,oneof=text number date"`
	Label  string           `json:"label"` // Optional
}

// UpdateFieldRequest defines the data allowed for updating a field definition.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateFieldRequest struct {
	Label *string           `json:"label"`
	Type  *domain.FieldType `json:"type" binding:"omitempty,oneof=text number date"`
	Order *int              `json:"order"`
}

// FieldResponse defines the data returned for a field definition.
type FieldResponse struct {
	FieldID   string           `json:"fieldID"`
	Module    string           `json:"module"`
	Name      string           `json:"name"`
	Label     string           `json:"label"`
	Type      domain.FieldType `json:"type"`
	Order     int              `json:"order"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ToFieldResponse converts a domain.FieldDefinition to a FieldResponse DTO
func ToFieldResponse(def *domain.FieldDefinition) FieldResponse {
	return FieldResponse{
		FieldID:   def.FieldID,
		Module:    def.Module,
		Name:      def.Name,
		Label:     def.Label,
		Type:      def.Type,
		Order:     def.Order,
		CreatedAt: def.CreatedAt,
		UpdatedAt: def.UpdatedAt,
	}
}

// ListFieldsResponse wraps the field definitions of a list call.
type ListFieldsResponse struct {
	Fields []FieldResponse `json:"fields"`
}

// ToListFieldsResponse converts a slice of domain definitions to the list DTO
func ToListFieldsResponse(defs []domain.FieldDefinition) ListFieldsResponse {
	res := make([]FieldResponse, len(defs))
	for i := range defs {
		res[i] = ToFieldResponse(&defs[i])
	}
	return ListFieldsResponse{Fields: res}
}

// ListFieldsParams defines query parameters for listing field definitions.
type ListFieldsParams struct {
	Module string `form:"module"` // Optional, empty means all modules
}

// AttachFieldValueRequest sets one field's value on one entity.
type AttachFieldValueRequest struct {
	FieldName string `json:"fieldName" binding:"required"`
	Value     any    `json:"value" binding:"required"`
	Label     string `json:"label"`
	Position  *int   `json:"position"` // Optional insertion index into the display order
}

// ReorderFieldsRequest carries a caller-supplied display sequence.
type ReorderFieldsRequest struct {
	FieldOrder []string `json:"fieldOrder" binding:"required"`
}

// FieldOrderResponse defines the data returned for an entity's display order.
type FieldOrderResponse struct {
	Module     string   `json:"module"`
	EntityID   string   `json:"entityID"`
	FieldOrder []string `json:"fieldOrder"`
}
