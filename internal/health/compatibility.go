package health

import (
	"fmt"
	"maps"
	"slices"
)

// Table is an immutable mapping from anatomical part to the set of status
// labels that are meaningful for that part. Every part's set contains
// "healthy".
type Table struct {
	parts map[string]map[string]struct{}
}

var defaultTable = mustTable(map[string][]string{
	Bud:    {"bud root dropping", "bud rot", Healthy},
	Leaves: {"leaf rot", "Grey leaf rot", "Whitefly", Healthy},
	Stem:   {"stem bleeding", Healthy},
})

// DefaultTable returns the compatibility table for coconut palm diseases.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable builds a Table from part -> statuses entries.
// Returns an error if a part is empty or its set omits "healthy".
func NewTable(entries map[string][]string) (*Table, error) {
	t := &Table{parts: make(map[string]map[string]struct{}, len(entries))}

	for part, statuses := range entries {
		if part == "" {
			return nil, fmt.Errorf("compatibility table: empty part name")
		}

		set := make(map[string]struct{}, len(statuses))
		for _, s := range statuses {
			set[s] = struct{}{}
		}

		if _, ok := set[Healthy]; !ok {
			return nil, fmt.Errorf("compatibility table: part %q must allow %q", part, Healthy)
		}

		t.parts[part] = set
	}

	return t, nil
}

func mustTable(entries map[string][]string) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValid reports whether status is a meaningful label for part.
func (t *Table) IsValid(part, status string) bool {
	set, ok := t.parts[part]
	if !ok {
		return false
	}
	_, ok = set[status]
	return ok
}

// Has reports whether the table declares a status set for part.
func (t *Table) Has(part string) bool {
	return len(t.parts[part]) > 0
}

// Parts returns the declared parts in lexical order.
func (t *Table) Parts() []string {
	return slices.Sorted(maps.Keys(t.parts))
}

// Statuses returns the statuses valid for part in lexical order.
func (t *Table) Statuses(part string) []string {
	return slices.Sorted(maps.Keys(t.parts[part]))
}

// Entries returns a copy of the table as part -> sorted statuses.
func (t *Table) Entries() map[string][]string {
	out := make(map[string][]string, len(t.parts))
	for part := range t.parts {
		out[part] = t.Statuses(part)
	}
	return out
}
