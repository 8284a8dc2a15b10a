package surveys

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Overall report statuses.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusCritical  = "critical"
)

// NoTreesMessage is reported when a survey has no trees yet.
const NoTreesMessage = "no trees analyzed yet"

// TreeStatus is the persisted outcome for one tree, as read for reporting.
type TreeStatus struct {
	FinalStatus           *string
	FinalHealthPercentage *float64
	CriticalAlert         bool
}

// Report summarizes the health of every tree in a survey.
type Report struct {
	SurveyID                uuid.UUID `json:"survey_id"`
	FarmerID                uuid.UUID `json:"farmer_id"`
	LandLocation            *string   `json:"land_location"`
	TotalTrees              *int      `json:"total_trees"`
	TreesAnalyzed           int       `json:"trees_analyzed"`
	HealthyCount            int       `json:"healthy_count"`
	UnhealthyCount          int       `json:"unhealthy_count"`
	CriticalCount           int       `json:"critical_count"`
	AverageHealthPercentage float64   `json:"average_health_percentage"`
	OverallStatus           string    `json:"overall_status,omitempty"`
	TopviewKey              *string   `json:"topview_key"`
	Message                 string    `json:"message,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

// BuildReport reduces tree outcomes into a survey report.
//
// A tree flagged critical_alert or with final status critical counts as
// critical; unhealthy trees count as unhealthy only when not alerted.
// The average covers trees that carry a health percentage.
func BuildReport(s Survey, trees []TreeStatus) Report {
	r := Report{
		SurveyID:      s.ID,
		FarmerID:      s.FarmerID,
		LandLocation:  s.LandLocation,
		TotalTrees:    s.TotalTrees,
		TopviewKey:    s.TopviewKey,
		CreatedAt:     s.CreatedAt,
		TreesAnalyzed: len(trees),
	}

	if len(trees) == 0 {
		r.Message = NoTreesMessage
		return r
	}

	var sum float64
	var counted int

	for _, t := range trees {
		status := ""
		if t.FinalStatus != nil {
			status = *t.FinalStatus
		}

		if status == StatusHealthy {
			r.HealthyCount++
		}
		if status == StatusUnhealthy && !t.CriticalAlert {
			r.UnhealthyCount++
		}
		if t.CriticalAlert || status == StatusCritical {
			r.CriticalCount++
		}

		if t.FinalHealthPercentage != nil {
			sum += *t.FinalHealthPercentage
			counted++
		}
	}

	if counted > 0 {
		r.AverageHealthPercentage = math.Round(sum/float64(counted)*100) / 100
	}

	switch {
	case r.CriticalCount > 0:
		r.OverallStatus = StatusCritical
	case r.UnhealthyCount > r.HealthyCount:
		r.OverallStatus = StatusUnhealthy
	default:
		r.OverallStatus = StatusHealthy
	}

	return r
}
