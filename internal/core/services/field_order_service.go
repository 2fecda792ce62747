package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	portsrepo "github.com/relatecrm/relate_crm_app/internal/core/ports/repositories"
	portssvc "github.com/relatecrm/relate_crm_app/internal/core/ports/services"
	"github.com/relatecrm/relate_crm_app/internal/utils/fieldops"
)

// fieldOrderService is the entity field-order tracker. The display sequence is
// persisted in two places: inline on the entity document and in a side table
// keyed by (module, entityID). Reads prefer the inline copy deterministically;
// the two writes of SetOrder are independent, so the locations can diverge
// under concurrent edits and readers must tolerate that.
type fieldOrderService struct {
	orderRepo  portsrepo.FieldOrderRepository
	entityRepo portsrepo.EntityRepository
	fieldRepo  portsrepo.FieldDefinitionRepository
}

// NewFieldOrderService creates the field-order tracker service.
func NewFieldOrderService(
	orderRepo portsrepo.FieldOrderRepository,
	entityRepo portsrepo.EntityRepository,
	fieldRepo portsrepo.FieldDefinitionRepository,
) portssvc.FieldOrderSvc {
	return &fieldOrderService{
		orderRepo:  orderRepo,
		entityRepo: entityRepo,
		fieldRepo:  fieldRepo,
	}
}

func (s *fieldOrderService) GetOrder(ctx context.Context, module, entityID string) ([]string, error) {
	// Inline copy wins when present and non-empty.
	entity, err := s.entityRepo.FindEntity(ctx, module, entityID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read entity %s/%s for field order: %w", module, entityID, err)
	}
	if entity != nil && len(entity.FieldOrder) > 0 {
		return entity.FieldOrder, nil
	}

	// Side record is the fallback; it also serves before the entity exists.
	side, err := s.orderRepo.FindFieldOrder(ctx, module, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read field order record %s/%s: %w", module, entityID, err)
	}
	if len(side.FieldOrder) == 0 {
		return []string{}, nil
	}
	return side.FieldOrder, nil
}

func (s *fieldOrderService) ResolveOrder(ctx context.Context, module, entityID string) ([]string, error) {
	explicit, err := s.GetOrder(ctx, module, entityID)
	if err != nil {
		return nil, err
	}

	defs, err := s.fieldRepo.ListFieldDefinitions(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("failed to list field definitions for %s: %w", module, err)
	}

	return fieldops.AppendUnordered(explicit, defs), nil
}

func (s *fieldOrderService) SetOrder(ctx context.Context, module, entityID string, order []string) error {
	now := time.Now()

	// Two independent writes, no cross-write transaction. Either may fail on
	// its own; the surviving side keeps serving reads, inline first.
	sideErr := s.orderRepo.SaveFieldOrder(ctx, domain.FieldOrder{
		Module:       module,
		EntityID:     entityID,
		FieldOrder:   order,
		LastModified: now,
	})

	inlineErr := s.entityRepo.UpdateEntityFields(ctx, module, entityID, nil, order)
	if errors.Is(inlineErr, apperrors.ErrNotFound) {
		// The entity may not exist yet; the side record alone carries the
		// tenant-level default until it does.
		inlineErr = nil
	}

	if sideErr != nil && inlineErr != nil {
		return fmt.Errorf("failed to persist field order %s/%s: %w", module, entityID, sideErr)
	}
	if sideErr != nil || inlineErr != nil {
		// Partial write: tolerated inconsistency, resolved by read precedence.
		partial := sideErr
		if partial == nil {
			partial = inlineErr
		}
		slog.WarnContext(ctx, "field order persisted to one location only",
			slog.String("module", module),
			slog.String("entity_id", entityID),
			slog.String("error", partial.Error()),
		)
	}
	return nil
}
