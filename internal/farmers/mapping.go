package farmers

import (
	"net/url"

	"github.com/JaimeStill/palmwatch/pkg/query"
	"github.com/JaimeStill/palmwatch/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "farmers", "f").
	Project("id", "ID").
	Project("name", "Name").
	Project("phone", "Phone").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for farmer queries.
// Name uses case-insensitive contains matching; Phone is exact.
type Filters struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("Phone", f.Phone)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if p := values.Get("phone"); p != "" {
		f.Phone = &p
	}

	return f
}

func scanFarmer(s repository.Scanner) (Farmer, error) {
	var f Farmer
	err := s.Scan(
		&f.ID,
		&f.Name,
		&f.Phone,
		&f.CreatedAt,
	)
	return f, err
}
