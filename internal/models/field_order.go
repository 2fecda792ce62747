package models

import "time"

// FieldOrder is the side-table copy of an entity's display sequence,
// keyed by (module, entity_id).
type FieldOrder struct {
	Module       string    `db:"module"`
	EntityID     string    `db:"entity_id"`
	FieldOrder   []string  `db:"field_order"` // stored as JSONB
	LastModified time.Time `db:"last_modified"`
}
