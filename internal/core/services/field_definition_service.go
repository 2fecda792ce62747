package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	portsrepo "github.com/relatecrm/relate_crm_app/internal/core/ports/repositories"
	portssvc "github.com/relatecrm/relate_crm_app/internal/core/ports/services"
	"github.com/relatecrm/relate_crm_app/internal/dto"
)

// fieldDefinitionService is the field definition store: CRUD over the
// tenant-defined field metadata of each module.
type fieldDefinitionService struct {
	fieldRepo portsrepo.FieldDefinitionRepository
}

// NewFieldDefinitionService creates the field definition store service.
func NewFieldDefinitionService(fieldRepo portsrepo.FieldDefinitionRepository) portssvc.FieldDefinitionSvcFacade {
	return &fieldDefinitionService{fieldRepo: fieldRepo}
}

func (s *fieldDefinitionService) ListFields(ctx context.Context, module string) ([]domain.FieldDefinition, error) {
	defs, err := s.fieldRepo.ListFieldDefinitions(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("failed to list field definitions: %w", err)
	}
	// Return empty slice if nothing is defined, not nil
	if defs == nil {
		return []domain.FieldDefinition{}, nil
	}
	return defs, nil
}

func (s *fieldDefinitionService) GetFieldByID(ctx context.Context, fieldID string) (*domain.FieldDefinition, error) {
	def, err := s.fieldRepo.FindFieldDefinitionByID(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to get field definition %s: %w", fieldID, err)
	}
	return def, nil
}

func (s *fieldDefinitionService) GetFieldByName(ctx context.Context, module, name string) (*domain.FieldDefinition, error) {
	def, err := s.fieldRepo.FindFieldDefinitionByName(ctx, module, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get field definition %s.%s: %w", module, name, err)
	}
	return def, nil
}

func (s *fieldDefinitionService) CreateField(ctx context.Context, req dto.CreateFieldRequest) (*domain.FieldDefinition, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: invalid field type %q", apperrors.ErrValidation, req.Type)
	}

	// Fast-path duplicate check; the unique index on (module, name) is the
	// real guard under concurrent creates.
	existing, err := s.fieldRepo.FindFieldDefinitionByName(ctx, req.Module, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing field %s.%s: %w", req.Module, req.Name, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: field %q already exists for module %q", apperrors.ErrDuplicate, req.Name, req.Module)
	}

	label := req.Label
	if label == "" {
		label = req.Name
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		// Append after the current siblings by default.
		siblings, err := s.fieldRepo.ListFieldDefinitions(ctx, req.Module)
		if err != nil {
			return nil, fmt.Errorf("failed to list sibling fields for %s: %w", req.Module, err)
		}
		for _, sib := range siblings {
			if sib.Order >= order {
				order = sib.Order + 1
			}
		}
	}

	now := time.Now()
	def := domain.FieldDefinition{
		FieldID: uuid.NewString(),
		Module:  req.Module,
		Name:    req.Name,
		Label:   label,
		Type:    req.Type,
		Order:   order,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.fieldRepo.SaveFieldDefinition(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to create field definition %s.%s: %w", req.Module, req.Name, err)
	}
	return &def, nil
}

func (s *fieldDefinitionService) UpdateField(ctx context.Context, fieldID string, req dto.UpdateFieldRequest) (*domain.FieldDefinition, error) {
	def, err := s.fieldRepo.FindFieldDefinitionByID(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to find field definition %s for update: %w", fieldID, err)
	}

	changed := false
	if req.Label != nil && *req.Label != def.Label {
		def.Label = *req.Label
		changed = true
	}
	if req.Type != nil && *req.Type != def.Type {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("%w: invalid field type %q", apperrors.ErrValidation, *req.Type)
		}
		def.Type = *req.Type
		changed = true
	}
	if req.Order != nil && *req.Order != def.Order {
		def.Order = *req.Order
		changed = true
	}

	if !changed {
		return def, nil
	}

	def.UpdatedAt = time.Now()
	if err := s.fieldRepo.UpdateFieldDefinition(ctx, *def); err != nil {
		return nil, fmt.Errorf("failed to update field definition %s: %w", fieldID, err)
	}
	return def, nil
}

func (s *fieldDefinitionService) DeleteField(ctx context.Context, fieldID string) error {
	// Removes the definition row only: values already stored on entities are
	// intentionally left in place (no cascading cleanup).
	if err := s.fieldRepo.DeleteFieldDefinition(ctx, fieldID); err != nil {
		return fmt.Errorf("failed to delete field definition %s: %w", fieldID, err)
	}
	return nil
}
