package models

import "time"

// FieldType mirrors domain.FieldType at the storage layer.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
)

// FieldDefinition is the stored shape of a custom-field definition.
// Uniqueness on (module, name) is enforced by a unique index.
type FieldDefinition struct {
	FieldID   string    `db:"field_id"`
	Module    string    `db:"module"`
	Name      string    `db:"name"`
	Label     string    `db:"label"`
	Type      FieldType `db:"field_type"`
	Order     int       `db:"display_order"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
