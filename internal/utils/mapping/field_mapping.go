package mapping

import (
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	"github.com/relatecrm/relate_crm_app/internal/models"
)

// ToModelFieldDefinition converts a domain FieldDefinition to a model FieldDefinition
func ToModelFieldDefinition(d domain.FieldDefinition) models.FieldDefinition {
	return models.FieldDefinition{
		FieldID:   d.FieldID,
		Module:    d.Module,
		Name:      d.Name,
		Label:     d.Label,
		Type:      models.FieldType(d.Type),
		Order:     d.Order,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainFieldDefinition converts a model FieldDefinition to a domain FieldDefinition
func ToDomainFieldDefinition(m models.FieldDefinition) domain.FieldDefinition {
	return domain.FieldDefinition{
		FieldID: m.FieldID,
		Module:  m.Module,
		Name:    m.Name,
		Label:   m.Label,
		Type:    domain.FieldType(m.Type),
		Order:   m.Order,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainFieldDefinitionSlice converts a slice of model FieldDefinitions to domain ones
func ToDomainFieldDefinitionSlice(ms []models.FieldDefinition) []domain.FieldDefinition {
	ds := make([]domain.FieldDefinition, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFieldDefinition(m)
	}
	return ds
}

// ToModelFieldOrder converts a domain FieldOrder to a model FieldOrder
func ToModelFieldOrder(d domain.FieldOrder) models.FieldOrder {
	return models.FieldOrder{
		Module:       d.Module,
		EntityID:     d.EntityID,
		FieldOrder:   d.FieldOrder,
		LastModified: d.LastModified,
	}
}

// ToDomainFieldOrder converts a model FieldOrder to a domain FieldOrder
func ToDomainFieldOrder(m models.FieldOrder) domain.FieldOrder {
	return domain.FieldOrder{
		Module:       m.Module,
		EntityID:     m.EntityID,
		FieldOrder:   m.FieldOrder,
		LastModified: m.LastModified,
	}
}
