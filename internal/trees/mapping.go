package trees

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/pkg/query"
	"github.com/JaimeStill/palmwatch/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "trees", "t").
	Project("id", "ID").
	Project("survey_id", "SurveyID").
	Project("tree_number", "TreeNumber").
	Project("cx", "Cx").
	Project("cy", "Cy").
	Project("final_status", "FinalStatus").
	Project("final_health_percentage", "FinalHealthPercentage").
	Project("critical_alert", "CriticalAlert").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "surveys", "s", "s.id = t.survey_id").
	Reference("s.farmer_id", "FarmerID")

const returning = "id, survey_id, tree_number, cx, cy, final_status, final_health_percentage, critical_alert, created_at, updated_at"

var defaultSort = query.SortField{Field: "TreeNumber"}

// Filters contains optional filtering criteria for tree queries.
// FarmerID matches trees in any of the farmer's surveys.
type Filters struct {
	SurveyID      *uuid.UUID `json:"survey_id,omitempty"`
	FarmerID      *uuid.UUID `json:"farmer_id,omitempty"`
	FinalStatus   *string    `json:"final_status,omitempty"`
	CriticalAlert *bool      `json:"critical_alert,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SurveyID", f.SurveyID).
		WhereEquals("FarmerID", f.FarmerID).
		WhereEquals("FinalStatus", f.FinalStatus).
		WhereEquals("CriticalAlert", f.CriticalAlert)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if sid := values.Get("survey_id"); sid != "" {
		if id, err := uuid.Parse(sid); err == nil {
			f.SurveyID = &id
		}
	}

	if fid := values.Get("farmer_id"); fid != "" {
		if id, err := uuid.Parse(fid); err == nil {
			f.FarmerID = &id
		}
	}

	if fs := values.Get("final_status"); fs != "" {
		f.FinalStatus = &fs
	}

	if ca := values.Get("critical_alert"); ca != "" {
		if v, err := strconv.ParseBool(ca); err == nil {
			f.CriticalAlert = &v
		}
	}

	return f
}

func scanTree(s repository.Scanner) (Tree, error) {
	var t Tree
	err := s.Scan(
		&t.ID,
		&t.SurveyID,
		&t.TreeNumber,
		&t.Cx,
		&t.Cy,
		&t.FinalStatus,
		&t.FinalHealthPercentage,
		&t.CriticalAlert,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func scanPart(s repository.Scanner) (Part, error) {
	var p Part
	var extra []byte
	err := s.Scan(
		&p.ID,
		&p.TreeID,
		&p.PartName,
		&p.Status,
		&p.Confidence,
		&extra,
		&p.RecordedAt,
	)
	if len(extra) > 0 {
		p.Extra = json.RawMessage(extra)
	}
	return p, err
}
