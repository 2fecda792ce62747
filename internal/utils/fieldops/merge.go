// Package fieldops holds the pure computations of the custom-field subsystem:
// value-map merging and display-order arithmetic. Nothing here performs I/O.
package fieldops

import (
	"sort"
	"time"

	"github.com/relatecrm/relate_crm_app/internal/core/domain"
)

// MergeValues recomputes an entity's custom-field value map from a freshly
// submitted payload. The merge replaces by submission: the result's key set is
// exactly the incoming key set, and fields present only in existing are dropped
// (forms resubmit the full known field set on save).
//
// Fields are walked in order when given, otherwise in the incoming map's keys
// (sorted for determinism). Each written entry records its position, keeps the
// existing label when one is present (falling back to the field name), and
// stamps lastModified with now.
func MergeValues(existing, incoming domain.CustomFieldsMap, order []string, now time.Time) domain.CustomFieldsMap {
	names := order
	if len(names) == 0 {
		names = make([]string, 0, len(incoming))
		for name := range incoming {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	merged := make(domain.CustomFieldsMap, len(incoming))
	idx := 0
	for _, name := range names {
		in, ok := incoming[name]
		if !ok {
			continue
		}
		label := in.Label
		if label == "" {
			if prev, ok := existing[name]; ok && prev.Label != "" {
				label = prev.Label
			} else {
				label = name
			}
		}
		merged[name] = domain.CustomFieldValue{
			Value:        in.Value,
			Order:        idx,
			Label:        label,
			LastModified: now,
		}
		idx++
	}
	return merged
}

// AppendUnordered combines an explicit (possibly partial) order with the field
// definitions that carry no explicit position: unordered definitions are
// appended after all explicitly ordered names, sorted by their default
// FieldDefinition.Order (ties broken by name for stability). Duplicate names
// inside the explicit order are left as-is; de-duplication is the caller's
// responsibility.
func AppendUnordered(explicit []string, defs []domain.FieldDefinition) []string {
	seen := make(map[string]bool, len(explicit))
	for _, name := range explicit {
		seen[name] = true
	}

	rest := make([]domain.FieldDefinition, 0, len(defs))
	for _, def := range defs {
		if !seen[def.Name] {
			rest = append(rest, def)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Order != rest[j].Order {
			return rest[i].Order < rest[j].Order
		}
		return rest[i].Name < rest[j].Name
	})

	out := make([]string, 0, len(explicit)+len(rest))
	out = append(out, explicit...)
	for _, def := range rest {
		out = append(out, def.Name)
	}
	return out
}

// InsertAt returns order with name inserted at position, clamped to the
// sequence bounds. A negative position appends. If name is already present in
// order it is left where it is and the sequence is returned unchanged.
func InsertAt(order []string, name string, position int) []string {
	for _, existing := range order {
		if existing == name {
			return order
		}
	}
	if position < 0 || position > len(order) {
		position = len(order)
	}
	out := make([]string, 0, len(order)+1)
	out = append(out, order[:position]...)
	out = append(out, name)
	out = append(out, order[position:]...)
	return out
}
