package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	portsrepo "github.com/relatecrm/relate_crm_app/internal/core/ports/repositories"
	portssvc "github.com/relatecrm/relate_crm_app/internal/core/ports/services"
	"github.com/relatecrm/relate_crm_app/internal/dto"
	"github.com/relatecrm/relate_crm_app/internal/utils/fieldops"
)

// fieldRegistrationService is the façade consumed by forms: each operation is
// a thin composition of the definition store, the order tracker and the pure
// value merger. There is no multi-step protocol, only idempotent
// read-merge-write sequences.
type fieldRegistrationService struct {
	definitions portssvc.FieldDefinitionSvcFacade
	tracker     portssvc.FieldOrderSvc
	entityRepo  portsrepo.EntityRepository
}

// NewFieldRegistrationService creates the form-facing field registration façade.
func NewFieldRegistrationService(
	definitions portssvc.FieldDefinitionSvcFacade,
	tracker portssvc.FieldOrderSvc,
	entityRepo portsrepo.EntityRepository,
) portssvc.FieldRegistrationSvcFacade {
	return &fieldRegistrationService{
		definitions: definitions,
		tracker:     tracker,
		entityRepo:  entityRepo,
	}
}

func (s *fieldRegistrationService) RegisterField(ctx context.Context, req dto.RegisterFieldRequest) (*domain.FieldDefinition, error) {
	def, err := s.definitions.CreateField(ctx, dto.CreateFieldRequest{
		Module: req.Module,
		Name:   req.Name,
		Label:  req.Label,
		Type:   req.Type,
	})
	if err != nil {
		// ErrDuplicate surfaces unchanged for the form's validation message.
		return nil, fmt.Errorf("failed to register field %s.%s: %w", req.Module, req.Name, err)
	}
	return def, nil
}

func (s *fieldRegistrationService) AttachFieldValue(ctx context.Context, module, entityID string, req dto.AttachFieldValueRequest) (*domain.Entity, error) {
	entity, err := s.entityRepo.FindEntity(ctx, module, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity %s/%s: %w", module, entityID, err)
	}

	// Value validation against the declared type happens here, at the write
	// boundary. Names with no surviving definition pass through unchecked:
	// orphaned keys are legal on entities.
	def, err := s.definitions.GetFieldByName(ctx, module, req.FieldName)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if def != nil {
		if err := domain.ValidateValueType(def.Type, req.Value); err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", module, req.FieldName, err)
		}
	}

	order, err := s.tracker.GetOrder(ctx, module, entityID)
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		order = entity.FieldOrder
	}

	position := -1
	if req.Position != nil {
		position = *req.Position
	}
	newOrder := fieldops.InsertAt(order, req.FieldName, position)

	label := req.Label
	if label == "" && def != nil {
		label = def.Label
	}

	// The submission is the full known value set plus the attached field: the
	// merger replaces by submission, so resubmitting the existing entries keeps
	// them alive.
	incoming := make(domain.CustomFieldsMap, len(entity.CustomFields)+1)
	for name, v := range entity.CustomFields {
		incoming[name] = v
	}
	incoming[req.FieldName] = domain.CustomFieldValue{Value: req.Value, Label: label}

	merged := fieldops.MergeValues(entity.CustomFields, incoming, newOrder, time.Now())

	// Order first, then the entity document; each write is idempotent so a
	// retried request converges.
	if err := s.tracker.SetOrder(ctx, module, entityID, newOrder); err != nil {
		return nil, err
	}
	if err := s.entityRepo.UpdateEntityFields(ctx, module, entityID, merged, newOrder); err != nil {
		return nil, fmt.Errorf("failed to write custom fields for %s/%s: %w", module, entityID, err)
	}

	entity.CustomFields = merged
	entity.FieldOrder = newOrder
	return entity, nil
}

func (s *fieldRegistrationService) ReorderFields(ctx context.Context, module, entityID string, newOrder []string) error {
	// Permutation validation against the known field set is intentionally not
	// enforced; the sequence is persisted as submitted.
	if err := s.tracker.SetOrder(ctx, module, entityID, newOrder); err != nil {
		return fmt.Errorf("failed to reorder fields for %s/%s: %w", module, entityID, err)
	}
	return nil
}

func (s *fieldRegistrationService) RemoveField(ctx context.Context, module, fieldID string) error {
	// Definition row only: no entity's customFields map or order is touched,
	// avoiding the cross-entity fan-out at the price of orphaned data.
	if err := s.definitions.DeleteField(ctx, fieldID); err != nil {
		return fmt.Errorf("failed to remove field %s from module %s: %w", fieldID, module, err)
	}
	return nil
}
