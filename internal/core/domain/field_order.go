package domain

import "time"

// FieldOrder is the per-entity display sequence of field names (built-in and
// custom combined). When present it is authoritative; absence means callers
// fall back to FieldDefinition.Order.
type FieldOrder struct {
	Module       string    `json:"module"`
	EntityID     string    `json:"entityID"` // reference only, the entity is owned by its collection
	FieldOrder   []string  `json:"fieldOrder"`
	LastModified time.Time `json:"lastModified"`
}
