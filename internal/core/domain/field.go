package domain

// FieldType defines the declared value type of a custom field.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
)

// IsValid reports whether t is one of the closed set of field types.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate:
		return true
	}
	return false
}

// FieldDefinition describes a tenant-defined attribute attached to one module's
// records. Name is the stable storage key; no two definitions share (module, name).
type FieldDefinition struct {
	FieldID string    `json:"fieldID"`
	Module  string    `json:"module"`
	Name    string    `json:"name"`
	Label   string    `json:"label"` // defaults to Name when not supplied
	Type    FieldType `json:"type"`
	Order   int       `json:"order"` // default position among sibling definitions
	Timestamps
}
