package services

import (
	"context"

	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	"github.com/relatecrm/relate_crm_app/internal/dto"
)

// FieldDefinitionReaderSvc defines read operations for field definitions
type FieldDefinitionReaderSvc interface {
	// ListFields retrieves definitions, optionally filtered to one module.
	// Empty module means all modules; an empty result is not an error.
	ListFields(ctx context.Context, module string) ([]domain.FieldDefinition, error)

	// GetFieldByID retrieves a single definition.
	GetFieldByID(ctx context.Context, fieldID string) (*domain.FieldDefinition, error)

	// GetFieldByName retrieves a single definition by its (module, name) identity.
	GetFieldByName(ctx context.Context, module, name string) (*domain.FieldDefinition, error)
}

// FieldDefinitionWriterSvc defines write operations for field definitions
type FieldDefinitionWriterSvc interface {
	// CreateField persists a new definition; rejects (module, name) duplicates.
	CreateField(ctx context.Context, req dto.CreateFieldRequest) (*domain.FieldDefinition, error)

	// UpdateField merges a patch onto a stored definition.
	UpdateField(ctx context.Context, fieldID string, req dto.UpdateFieldRequest) (*domain.FieldDefinition, error)

	// DeleteField removes the definition row only; entity values are untouched.
	DeleteField(ctx context.Context, fieldID string) error
}

// FieldDefinitionSvcFacade combines reader and writer operations on the
// field definition store.
type FieldDefinitionSvcFacade interface {
	FieldDefinitionReaderSvc
	FieldDefinitionWriterSvc
}

// FieldOrderSvc is the entity field-order tracker: the authoritative display
// sequence for an entity's fields, persisted both inline and in a side table.
type FieldOrderSvc interface {
	// GetOrder resolves the display sequence: inline copy first, side record
	// second, empty slice when neither exists.
	GetOrder(ctx context.Context, module, entityID string) ([]string, error)

	// ResolveOrder applies the fallback/append rule on top of GetOrder: fields
	// with definitions but no explicit position are appended, sorted by their
	// default order.
	ResolveOrder(ctx context.Context, module, entityID string) ([]string, error)

	// SetOrder writes the sequence to both locations with two independent,
	// individually idempotent writes.
	SetOrder(ctx context.Context, module, entityID string, order []string) error
}

// FieldRegistrationSvcFacade is the operation set consumed by forms, a thin
// composition of the definition store, the order tracker and the value merger.
type FieldRegistrationSvcFacade interface {
	// RegisterField creates a field definition, idempotent per (module, name)
	// in the sense that a second call fails with apperrors.ErrDuplicate.
	RegisterField(ctx context.Context, req dto.RegisterFieldRequest) (*domain.FieldDefinition, error)

	// AttachFieldValue sets one field's value on one entity, inserting the field
	// into the display order at the requested position (append when new and no
	// position is given).
	AttachFieldValue(ctx context.Context, module, entityID string, req dto.AttachFieldValueRequest) (*domain.Entity, error)

	// ReorderFields persists a caller-supplied display sequence.
	ReorderFields(ctx context.Context, module, entityID string, newOrder []string) error

	// RemoveField deletes a field definition without touching stored values.
	RemoveField(ctx context.Context, module, fieldID string) error
}
