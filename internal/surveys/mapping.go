package surveys

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/pkg/query"
	"github.com/JaimeStill/palmwatch/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "surveys", "s").
	Project("id", "ID").
	Project("farmer_id", "FarmerID").
	Project("land_location", "LandLocation").
	Project("total_trees", "TotalTrees").
	Project("topview_key", "TopviewKey").
	Project("extra_data", "ExtraData").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const returning = "id, farmer_id, land_location, total_trees, topview_key, extra_data, created_at, updated_at"

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for survey queries.
type Filters struct {
	FarmerID     *uuid.UUID `json:"farmer_id,omitempty"`
	LandLocation *string    `json:"land_location,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("FarmerID", f.FarmerID).
		WhereContains("LandLocation", f.LandLocation)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unparseable farmer_id is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if fid := values.Get("farmer_id"); fid != "" {
		if id, err := uuid.Parse(fid); err == nil {
			f.FarmerID = &id
		}
	}

	if loc := values.Get("land_location"); loc != "" {
		f.LandLocation = &loc
	}

	return f
}

func scanSurvey(s repository.Scanner) (Survey, error) {
	var sv Survey
	var extra []byte
	err := s.Scan(
		&sv.ID,
		&sv.FarmerID,
		&sv.LandLocation,
		&sv.TotalTrees,
		&sv.TopviewKey,
		&extra,
		&sv.CreatedAt,
		&sv.UpdatedAt,
	)
	if len(extra) > 0 {
		sv.ExtraData = json.RawMessage(extra)
	}
	return sv, err
}

func scanTreeStatus(s repository.Scanner) (TreeStatus, error) {
	var t TreeStatus
	err := s.Scan(&t.FinalStatus, &t.FinalHealthPercentage, &t.CriticalAlert)
	return t, err
}
