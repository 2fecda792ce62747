package services

import (
	"context"

	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	"github.com/relatecrm/relate_crm_app/internal/dto"
)

// EntitySvcFacade exposes the thin entity CRUD the field subsystem needs as a
// collaborator: records to attach values to and to read orders from.
type EntitySvcFacade interface {
	// CreateEntity persists a new record for a module.
	CreateEntity(ctx context.Context, module string, req dto.CreateEntityRequest) (*domain.Entity, error)

	// GetEntity retrieves one record.
	GetEntity(ctx context.Context, module, entityID string) (*domain.Entity, error)

	// GetEntityFields returns the resolved display order and the current
	// custom-field values, the payload an edit form renders from.
	GetEntityFields(ctx context.Context, module, entityID string) (*dto.EntityFieldsResponse, error)
}
