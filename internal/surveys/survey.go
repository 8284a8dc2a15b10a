// Package surveys implements the survey domain: a farmer's plantation walk,
// its top-view imagery, and the health report over the trees it contains.
package surveys

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Survey is one plantation survey registered under a farmer.
type Survey struct {
	ID           uuid.UUID       `json:"id"`
	FarmerID     uuid.UUID       `json:"farmer_id"`
	LandLocation *string         `json:"land_location"`
	TotalTrees   *int            `json:"total_trees"`
	TopviewKey   *string         `json:"topview_key"`
	ExtraData    json.RawMessage `json:"extra_data"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateCommand carries the fields required to start a survey.
type CreateCommand struct {
	FarmerID     uuid.UUID       `json:"farmer_id"`
	LandLocation *string         `json:"land_location,omitempty"`
	TotalTrees   *int            `json:"total_trees,omitempty"`
	ExtraData    json.RawMessage `json:"extra_data,omitempty"`
}

// UpdateCommand replaces the mutable survey fields. Nil fields are left unchanged.
type UpdateCommand struct {
	LandLocation *string         `json:"land_location,omitempty"`
	TotalTrees   *int            `json:"total_trees,omitempty"`
	ExtraData    json.RawMessage `json:"extra_data,omitempty"`
}

// TopViewCommand carries an uploaded top-view image.
type TopViewCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}

func validTotal(n *int) bool {
	return n == nil || *n >= 0
}

func extraOrEmpty(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "{}", nil
	}
	if !json.Valid(raw) {
		return "", ErrInvalidSurvey
	}
	return string(raw), nil
}
