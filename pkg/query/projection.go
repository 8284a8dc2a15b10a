// Package query builds parameterized PostgreSQL queries over a projected table.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps record field names to qualified columns (alias.column).
// Projected columns are selected; referenced columns from joined tables are
// only available to filters and ordering.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	joins   []string
	columns map[string]string
	order   []string
}

// NewProjectionMap creates a ProjectionMap for schema.table under alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project selects column and exposes it as field.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns[field] = qualified
	p.order = append(p.order, qualified)
	return p
}

// Join adds an inner join, e.g. Join("public", "surveys", "s", "s.id = t.survey_id").
func (p *ProjectionMap) Join(schema, table, alias, on string) *ProjectionMap {
	p.joins = append(p.joins, fmt.Sprintf("JOIN %s.%s %s ON %s", schema, table, alias, on))
	return p
}

// Reference exposes a joined column as field without selecting it.
func (p *ProjectionMap) Reference(qualified, field string) *ProjectionMap {
	p.columns[field] = qualified
	return p
}

// From returns the FROM target: the aliased table followed by any joins.
func (p *ProjectionMap) From() string {
	from := fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
	if len(p.joins) == 0 {
		return from
	}
	return from + " " + strings.Join(p.joins, " ")
}

// Column returns the qualified column for field, or field itself when unmapped.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

// Columns returns the selected columns as a comma-separated list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.order, ", ")
}
