package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
)

// CustomFieldValue is one entry inside an entity's custom-field value map.
// Value is stored as submitted; its shape follows the FieldDefinition.Type but
// is not re-checked on read, so stale or orphaned entries remain readable.
type CustomFieldValue struct {
	Value        any       `json:"value"`
	Order        int       `json:"order"` // position hint within the display sequence
	Label        string    `json:"label"` // display copy, may drift from the definition's label
	LastModified time.Time `json:"lastModified"`
}

// CustomFieldsMap is an entity's custom-field value map, keyed by field name.
// The key set does not have to equal any FieldDefinition set.
type CustomFieldsMap map[string]CustomFieldValue

// ValidateValueType checks a submitted raw value against a field's declared
// type: numbers must parse as decimals, dates as RFC 3339. Text accepts any
// string. This is the write-boundary check; the stored value itself stays as
// submitted.
func ValidateValueType(fieldType FieldType, value any) error {
	switch fieldType {
	case FieldTypeText:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: text field requires a string value, got %T", apperrors.ErrValidation, value)
		}
	case FieldTypeNumber:
		switch v := value.(type) {
		case float64, int, int64:
			// JSON numbers decode as float64; accepted as-is.
		case string:
			if _, err := decimal.NewFromString(v); err != nil {
				return fmt.Errorf("%w: number field value %q is not numeric", apperrors.ErrValidation, v)
			}
		default:
			return fmt.Errorf("%w: number field requires a numeric value, got %T", apperrors.ErrValidation, v)
		}
	case FieldTypeDate:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: date field requires an RFC 3339 string, got %T", apperrors.ErrValidation, value)
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("%w: date field value %q is not RFC 3339", apperrors.ErrValidation, s)
		}
	default:
		return fmt.Errorf("%w: unknown field type %q", apperrors.ErrValidation, fieldType)
	}
	return nil
}
