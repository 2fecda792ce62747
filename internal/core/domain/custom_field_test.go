package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
)

func TestValidateValueType(t *testing.T) {
	tests := []struct {
		name      string
		fieldType domain.FieldType
		value     any
		wantErr   bool
	}{
		{
			name:      "text accepts a string",
			fieldType: domain.FieldTypeText,
			value:     "BC-42",
			wantErr:   false,
		},
		{
			name:      "text rejects a number",
			fieldType: domain.FieldTypeText,
			value:     float64(42),
			wantErr:   true,
		},
		{
			name:      "number accepts a json float",
			fieldType: domain.FieldTypeNumber,
			value:     float64(12.5),
			wantErr:   false,
		},
		{
			name:      "number accepts a decimal string",
			fieldType: domain.FieldTypeNumber,
			value:     "1299.99",
			wantErr:   false,
		},
		{
			name:      "number rejects a non-numeric string",
			fieldType: domain.FieldTypeNumber,
			value:     "a dozen",
			wantErr:   true,
		},
		{
			name:      "number rejects a bool",
			fieldType: domain.FieldTypeNumber,
			value:     true,
			wantErr:   true,
		},
		{
			name:      "date accepts rfc3339",
			fieldType: domain.FieldTypeDate,
			value:     "2026-03-01T09:00:00Z",
			wantErr:   false,
		},
		{
			name:      "date rejects a bare day",
			fieldType: domain.FieldTypeDate,
			value:     "next tuesday",
			wantErr:   true,
		},
		{
			name:      "date rejects a non-string",
			fieldType: domain.FieldTypeDate,
			value:     float64(1767225600),
			wantErr:   true,
		},
		{
			name:      "unknown type is rejected",
			fieldType: domain.FieldType("picklist"),
			value:     "anything",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateValueType(tt.fieldType, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFieldType_IsValid(t *testing.T) {
	assert.True(t, domain.FieldTypeText.IsValid())
	assert.True(t, domain.FieldTypeNumber.IsValid())
	assert.True(t, domain.FieldTypeDate.IsValid())
	assert.False(t, domain.FieldType("picklist").IsValid())
	assert.False(t, domain.FieldType("").IsValid())
}

func TestIsKnownModule(t *testing.T) {
	assert.True(t, domain.IsKnownModule("contacts"))
	assert.True(t, domain.IsKnownModule("projects"))
	assert.False(t, domain.IsKnownModule("spaceships"))
	assert.False(t, domain.IsKnownModule(""))
}
