package mapping

import (
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	"github.com/relatecrm/relate_crm_app/internal/models"
)

// ToModelCustomFieldsMap converts a domain custom-field map to its stored shape
func ToModelCustomFieldsMap(d domain.CustomFieldsMap) map[string]models.CustomFieldValue {
	if d == nil {
		return nil
	}
	m := make(map[string]models.CustomFieldValue, len(d))
	for name, v := range d {
		m[name] = models.CustomFieldValue{
			Value:        v.Value,
			Order:        v.Order,
			Label:        v.Label,
			LastModified: v.LastModified,
		}
	}
	return m
}

// ToDomainCustomFieldsMap converts a stored custom-field map to its domain shape
func ToDomainCustomFieldsMap(m map[string]models.CustomFieldValue) domain.CustomFieldsMap {
	if m == nil {
		return nil
	}
	d := make(domain.CustomFieldsMap, len(m))
	for name, v := range m {
		d[name] = domain.CustomFieldValue{
			Value:        v.Value,
			Order:        v.Order,
			Label:        v.Label,
			LastModified: v.LastModified,
		}
	}
	return d
}

// ToModelEntity converts a domain Entity to a model Entity
func ToModelEntity(d domain.Entity) models.Entity {
	return models.Entity{
		Module:       d.Module,
		EntityID:     d.EntityID,
		Attributes:   d.Attributes,
		CustomFields: ToModelCustomFieldsMap(d.CustomFields),
		FieldOrder:   d.FieldOrder,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainEntity converts a model Entity to a domain Entity
func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		Module:       m.Module,
		EntityID:     m.EntityID,
		Attributes:   m.Attributes,
		CustomFields: ToDomainCustomFieldsMap(m.CustomFields),
		FieldOrder:   m.FieldOrder,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
