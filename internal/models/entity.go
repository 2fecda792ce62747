package models

import "time"

// CustomFieldValue is the stored shape of one custom-field map entry.
type CustomFieldValue struct {
	Value        any       `json:"value"`
	Order        int       `json:"order"`
	Label        string    `json:"label"`
	LastModified time.Time `json:"lastModified"`
}

// Entity is the stored shape of a CRM record. Attributes, CustomFields and
// FieldOrder are JSONB columns; the table is keyed by (module, entity_id).
type Entity struct {
	Module       string                      `db:"module"`
	EntityID     string                      `db:"entity_id"`
	Attributes   map[string]any              `db:"attributes"`
	CustomFields map[string]CustomFieldValue `db:"custom_fields"`
	FieldOrder   []string                    `db:"field_order"`
	CreatedAt    time.Time                   `db:"created_at"`
	UpdatedAt    time.Time                   `db:"updated_at"`
}
