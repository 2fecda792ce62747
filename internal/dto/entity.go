package dto

import (
	"time"

	"github.com/relatecrm/relate_crm_app/internal/core/domain"
)

// CreateEntityRequest defines the data needed to create a CRM record.
// Attributes are the module-specific built-in fields, stored opaquely.
type CreateEntityRequest struct {
	Attributes   map[string]any         `json:"attributes" binding:"required"`
	CustomFields domain.CustomFieldsMap `json:"customFields"`
	FieldOrder   []string               `json:"fieldOrder"`
}

// EntityResponse defines the data returned for a CRM record.
type EntityResponse struct {
	Module       string                 `json:"module"`
	EntityID     string                 `json:"entityID"`
	Attributes   map[string]any         `json:"attributes"`
	CustomFields domain.CustomFieldsMap `json:"customFields,omitempty"`
	FieldOrder   []string               `json:"fieldOrder,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// ToEntityResponse converts a domain.Entity to an EntityResponse DTO
func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		Module:       e.Module,
		EntityID:     e.EntityID,
		Attributes:   e.Attributes,
		CustomFields: e.CustomFields,
		FieldOrder:   e.FieldOrder,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// EntityFieldsResponse is the payload an edit form renders from: the resolved
// display sequence plus the entity's current custom-field values.
type EntityFieldsResponse struct {
	Module       string                 `json:"module"`
	EntityID     string                 `json:"entityID"`
	FieldOrder   []string               `json:"fieldOrder"`
	CustomFields domain.CustomFieldsMap `json:"customFields"`
}
