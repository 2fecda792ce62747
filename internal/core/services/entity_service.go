package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	portsrepo "github.com/relatecrm/relate_crm_app/internal/core/ports/repositories"
	portssvc "github.com/relatecrm/relate_crm_app/internal/core/ports/services"
	"github.com/relatecrm/relate_crm_app/internal/dto"
	"github.com/relatecrm/relate_crm_app/internal/utils/fieldops"
)

// entityService is the thin entity storage collaborator: create and read CRM
// records so the field subsystem has documents to attach values to. Module
// specific attribute validation happens at the boundary, not here.
type entityService struct {
	entityRepo portsrepo.EntityRepository
	tracker    portssvc.FieldOrderSvc
}

// NewEntityService creates the entity collaborator service.
func NewEntityService(entityRepo portsrepo.EntityRepository, tracker portssvc.FieldOrderSvc) portssvc.EntitySvcFacade {
	return &entityService{entityRepo: entityRepo, tracker: tracker}
}

func (s *entityService) CreateEntity(ctx context.Context, module string, req dto.CreateEntityRequest) (*domain.Entity, error) {
	if !domain.IsKnownModule(module) {
		return nil, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, module)
	}

	now := time.Now()
	customFields := req.CustomFields
	if len(customFields) > 0 {
		customFields = fieldops.MergeValues(nil, customFields, req.FieldOrder, now)
	}

	entity := domain.Entity{
		Module:       module,
		EntityID:     uuid.NewString(),
		Attributes:   req.Attributes,
		CustomFields: customFields,
		FieldOrder:   req.FieldOrder,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create %s entity: %w", module, err)
	}
	return &entity, nil
}

func (s *entityService) GetEntity(ctx context.Context, module, entityID string) (*domain.Entity, error) {
	entity, err := s.entityRepo.FindEntity(ctx, module, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity %s/%s: %w", module, entityID, err)
	}
	return entity, nil
}

func (s *entityService) GetEntityFields(ctx context.Context, module, entityID string) (*dto.EntityFieldsResponse, error) {
	entity, err := s.entityRepo.FindEntity(ctx, module, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity %s/%s: %w", module, entityID, err)
	}

	order, err := s.tracker.ResolveOrder(ctx, module, entityID)
	if err != nil {
		return nil, err
	}

	return &dto.EntityFieldsResponse{
		Module:       module,
		EntityID:     entityID,
		FieldOrder:   order,
		CustomFields: entity.CustomFields,
	}, nil
}
