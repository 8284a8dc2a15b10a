// Package trees implements the tree domain: surveyed palms, their recorded
// part observations, and the persisted health outcome derived from either
// manual observations or an aggregated dashboard.
package trees

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/internal/health"
)

// Tree is one palm inside a survey.
type Tree struct {
	ID                    uuid.UUID `json:"id"`
	SurveyID              uuid.UUID `json:"survey_id"`
	TreeNumber            int       `json:"tree_number"`
	Cx                    *float64  `json:"cx"`
	Cy                    *float64  `json:"cy"`
	FinalStatus           *string   `json:"final_status"`
	FinalHealthPercentage *float64  `json:"final_health_percentage"`
	CriticalAlert         bool      `json:"critical_alert"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Part is one recorded observation of a tree part.
type Part struct {
	ID         uuid.UUID       `json:"id"`
	TreeID     uuid.UUID       `json:"tree_id"`
	PartName   string          `json:"part_name"`
	Status     string          `json:"status"`
	Confidence float64         `json:"confidence"`
	Extra      json.RawMessage `json:"extra"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// CreateCommand carries the fields required to register a tree.
type CreateCommand struct {
	SurveyID   uuid.UUID `json:"survey_id"`
	TreeNumber int       `json:"tree_number"`
	Cx         *float64  `json:"cx,omitempty"`
	Cy         *float64  `json:"cy,omitempty"`
}

// PartCommand records a manual part observation. When FarmerID is set the
// tree's survey must belong to that farmer.
type PartCommand struct {
	Part       string          `json:"part"`
	Status     string          `json:"status"`
	Confidence float64         `json:"confidence"`
	FarmerID   *uuid.UUID      `json:"farmer_id,omitempty"`
	Extra      json.RawMessage `json:"extra,omitempty"`
}

// PartUpdate is the result of recording an observation: the stored part,
// the re-assessed tree, and the assessment that produced its outcome.
type PartUpdate struct {
	Tree       Tree              `json:"tree"`
	Part       Part              `json:"part"`
	Assessment health.Assessment `json:"assessment"`
}

// ManualStatuses are the statuses accepted on the manual observation path.
var ManualStatuses = []string{
	"healthy",
	"unhealthy",
	"critical",
	"bud_rot",
	"bud_root_dropping",
	"stem_bleeding",
}

func (c *PartCommand) validate() error {
	c.Part = health.NormalizePart(c.Part)
	if !slices.Contains(health.Parts(), c.Part) {
		return ErrInvalidPart
	}

	c.Status = strings.ToLower(strings.TrimSpace(c.Status))
	if !slices.Contains(ManualStatuses, c.Status) {
		return ErrInvalidStatus
	}

	if c.Confidence < 0 || c.Confidence > 1 {
		return ErrInvalidConfidence
	}

	if len(c.Extra) > 0 && !json.Valid(c.Extra) {
		return ErrInvalidTree
	}
	return nil
}

func (c CreateCommand) validate() error {
	if c.SurveyID == uuid.Nil || c.TreeNumber <= 0 {
		return ErrInvalidTree
	}
	return nil
}

// Observations groups stored parts into the per-part observation lists
// consumed by health.AssessTree.
func Observations(parts []Part) map[string][]health.Observation {
	grouped := make(map[string][]health.Observation)
	for _, p := range parts {
		c := p.Confidence
		grouped[p.PartName] = append(grouped[p.PartName], health.Observation{
			Status:     p.Status,
			Confidence: &c,
		})
	}
	return grouped
}
