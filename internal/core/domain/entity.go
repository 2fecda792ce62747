package domain

// Entity is one CRM record (account, contact, deal, ...). The field subsystem
// does not own entities; it only reads and writes CustomFields and FieldOrder.
type Entity struct {
	Module       string          `json:"module"`
	EntityID     string          `json:"entityID"`
	Attributes   map[string]any  `json:"attributes"` // module-specific built-in fields, stored opaquely
	CustomFields CustomFieldsMap `json:"customFields,omitempty"`
	FieldOrder   []string        `json:"fieldOrder,omitempty"` // inline copy of the display sequence
	Timestamps
}

// KnownModules is the set of record types fields and orders may belong to.
var KnownModules = []string{
	"accounts",
	"contacts",
	"deals",
	"invoices",
	"quotes",
	"tickets",
	"projects",
	"activities",
	"inventory",
	"services",
}

// IsKnownModule reports whether module names one of the CRM record types.
func IsKnownModule(module string) bool {
	for _, m := range KnownModules {
		if m == module {
			return true
		}
	}
	return false
}
