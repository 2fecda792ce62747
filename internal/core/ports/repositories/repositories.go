package repositories

import (
	"context"

	"github.com/relatecrm/relate_crm_app/internal/core/domain"
)

// Note: Context is included on every operation for cancellation/timeouts,
// though callers apply their own request-level timeout.

// FieldDefinitionRepository defines persistence operations for custom-field definitions.
type FieldDefinitionRepository interface {
	// SaveFieldDefinition inserts a new definition. Returns apperrors.ErrDuplicate
	// when another definition with the same (module, name) already exists.
	SaveFieldDefinition(ctx context.Context, def domain.FieldDefinition) error

	// FindFieldDefinitionByID retrieves one definition by its id.
	FindFieldDefinitionByID(ctx context.Context, fieldID string) (*domain.FieldDefinition, error)

	// FindFieldDefinitionByName retrieves one definition by its (module, name) identity.
	FindFieldDefinitionByName(ctx context.Context, module, name string) (*domain.FieldDefinition, error)

	// ListFieldDefinitions retrieves definitions, all of them or one module's,
	// ordered by display order then name.
	ListFieldDefinitions(ctx context.Context, module string) ([]domain.FieldDefinition, error)

	// UpdateFieldDefinition overwrites a stored definition.
	UpdateFieldDefinition(ctx context.Context, def domain.FieldDefinition) error

	// DeleteFieldDefinition removes the definition row only.
	DeleteFieldDefinition(ctx context.Context, fieldID string) error
}

// FieldOrderRepository defines persistence for the side field-order table.
type FieldOrderRepository interface {
	// FindFieldOrder retrieves the side record for (module, entityID).
	FindFieldOrder(ctx context.Context, module, entityID string) (*domain.FieldOrder, error)

	// SaveFieldOrder upserts the side record; idempotent on retry.
	SaveFieldOrder(ctx context.Context, order domain.FieldOrder) error
}

// EntityRepository is the entity storage collaborator: one document per
// (module, id), of which the field subsystem reads and writes only the
// customFields and fieldOrder attributes.
type EntityRepository interface {
	// FindEntity retrieves one entity document.
	FindEntity(ctx context.Context, module, entityID string) (*domain.Entity, error)

	// SaveEntity inserts a new entity document.
	SaveEntity(ctx context.Context, entity domain.Entity) error

	// UpdateEntityFields writes a partial set of the entity's field attributes.
	// Nil customFields or fieldOrder leaves the stored column untouched; each
	// write is independent and idempotent on retry.
	UpdateEntityFields(ctx context.Context, module, entityID string, customFields domain.CustomFieldsMap, fieldOrder []string) error
}

// RepositoryProvider bundles all repositories for service wiring.
type RepositoryProvider struct {
	FieldDefinitionRepo FieldDefinitionRepository
	FieldOrderRepo      FieldOrderRepository
	EntityRepo          EntityRepository
}
