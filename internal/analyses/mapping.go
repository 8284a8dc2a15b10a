package analyses

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/pkg/query"
	"github.com/JaimeStill/palmwatch/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("tree_id", "TreeID").
	Project("source", "Source").
	Project("tree_health", "TreeHealth").
	Project("weighted_score", "WeightedScore").
	Project("primary_disease", "PrimaryDisease").
	Project("critical_alert", "CriticalAlert").
	Project("total_frames", "TotalFrames").
	Project("valid_frames", "ValidFrames").
	Project("discarded_frames", "DiscardedFrames").
	Project("frames_key", "FramesKey").
	Project("dashboard_key", "DashboardKey").
	Project("created_at", "CreatedAt")

const returning = `id, tree_id, source, tree_health, weighted_score, primary_disease, critical_alert,
	total_frames, valid_frames, discarded_frames, frames_key, dashboard_key, created_at`

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
type Filters struct {
	TreeID        *uuid.UUID `json:"tree_id,omitempty"`
	TreeHealth    *string    `json:"tree_health,omitempty"`
	CriticalAlert *bool      `json:"critical_alert,omitempty"`
	Source        *string    `json:"source,omitempty"`
	MinScore      *float64   `json:"min_score,omitempty"`
	MaxScore      *float64   `json:"max_score,omitempty"`
	Since         *time.Time `json:"since,omitempty"`
	Until         *time.Time `json:"until,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TreeID", f.TreeID).
		WhereEquals("TreeHealth", f.TreeHealth).
		WhereEquals("CriticalAlert", f.CriticalAlert).
		WhereContains("Source", f.Source).
		WhereAtLeast("WeightedScore", f.MinScore).
		WhereAtMost("WeightedScore", f.MaxScore).
		WhereAtLeast("CreatedAt", f.Since).
		WhereAtMost("CreatedAt", f.Until)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if tid := values.Get("tree_id"); tid != "" {
		if id, err := uuid.Parse(tid); err == nil {
			f.TreeID = &id
		}
	}

	if th := values.Get("tree_health"); th != "" {
		f.TreeHealth = &th
	}

	if ca := values.Get("critical_alert"); ca != "" {
		if v, err := strconv.ParseBool(ca); err == nil {
			f.CriticalAlert = &v
		}
	}

	if src := values.Get("source"); src != "" {
		f.Source = &src
	}

	f.MinScore = floatParam(values, "min_score")
	f.MaxScore = floatParam(values, "max_score")
	f.Since = timeParam(values, "since")
	f.Until = timeParam(values, "until")

	return f
}

func floatParam(values url.Values, key string) *float64 {
	v, err := strconv.ParseFloat(values.Get(key), 64)
	if err != nil {
		return nil
	}
	return &v
}

func timeParam(values url.Values, key string) *time.Time {
	v, err := time.Parse(time.RFC3339, values.Get(key))
	if err != nil {
		return nil
	}
	return &v
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	err := s.Scan(
		&a.ID,
		&a.TreeID,
		&a.Source,
		&a.TreeHealth,
		&a.WeightedScore,
		&a.PrimaryDisease,
		&a.CriticalAlert,
		&a.TotalFrames,
		&a.ValidFrames,
		&a.DiscardedFrames,
		&a.FramesKey,
		&a.DashboardKey,
		&a.CreatedAt,
	)
	return a, err
}
