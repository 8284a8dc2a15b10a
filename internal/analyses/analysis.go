// Package analyses ingests classifier frame batches for a tree, reduces them
// to a health dashboard, archives the batch and dashboard in blob storage,
// and records the outcome on the tree.
package analyses

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/internal/health"
)

// Analysis is the stored summary of one aggregated frame batch.
type Analysis struct {
	ID              uuid.UUID  `json:"id"`
	TreeID          *uuid.UUID `json:"tree_id"`
	Source          *string    `json:"source"`
	TreeHealth      string     `json:"tree_health"`
	WeightedScore   float64    `json:"weighted_score"`
	PrimaryDisease  *string    `json:"primary_disease"`
	CriticalAlert   bool       `json:"critical_alert"`
	TotalFrames     int        `json:"total_frames"`
	ValidFrames     int        `json:"valid_frames"`
	DiscardedFrames int        `json:"discarded_frames"`
	FramesKey       string     `json:"frames_key"`
	DashboardKey    string     `json:"dashboard_key"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CreateCommand submits a batch of raw prediction records. Frames are kept
// verbatim for archiving and decoded tolerantly for aggregation.
type CreateCommand struct {
	TreeID *uuid.UUID        `json:"tree_id,omitempty"`
	Source string            `json:"source,omitempty"`
	Frames []json.RawMessage `json:"frames"`
}

// Result pairs a stored analysis with the dashboard it produced.
type Result struct {
	Analysis  Analysis         `json:"analysis"`
	Dashboard health.Dashboard `json:"dashboard"`
}

// BatchCommand submits several analyses at once.
type BatchCommand struct {
	Items []CreateCommand `json:"items"`
}

// BatchItem is the per-item outcome of a batch. Exactly one of Result and
// Error is set.
type BatchItem struct {
	Index  int     `json:"index"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Limits bounds the work accepted per request.
type Limits struct {
	MaxFrames    int
	BatchWorkers int
	MaxBatchSize int
}

func (c CreateCommand) rawFrames(maxFrames int) ([]health.RawFrame, error) {
	if maxFrames > 0 && len(c.Frames) > maxFrames {
		return nil, fmt.Errorf("%w: %d frames, limit %d", ErrTooManyFrames, len(c.Frames), maxFrames)
	}

	raws := make([]health.RawFrame, len(c.Frames))
	for i, f := range c.Frames {
		if err := json.Unmarshal(f, &raws[i]); err != nil {
			return nil, fmt.Errorf("%w: frame %d: %v", ErrInvalidFrames, i, err)
		}
	}
	return raws, nil
}

func (c CreateCommand) framesJSON() ([]byte, error) {
	frames := c.Frames
	if frames == nil {
		frames = []json.RawMessage{}
	}
	return json.Marshal(frames)
}

func framesKey(id uuid.UUID) string {
	return fmt.Sprintf("analyses/%s/frames.json", id)
}

func dashboardKey(id uuid.UUID) string {
	return fmt.Sprintf("analyses/%s/dashboard.json", id)
}

func summarize(id uuid.UUID, cmd CreateCommand, d health.Dashboard) Analysis {
	a := Analysis{
		ID:              id,
		TreeID:          cmd.TreeID,
		TreeHealth:      d.Tree.Health,
		WeightedScore:   d.Tree.WeightedScore,
		PrimaryDisease:  d.Tree.PrimaryDisease,
		CriticalAlert:   d.Tree.PrimaryIssue != nil && d.Tree.PrimaryIssue.Severity == health.SeverityCritical,
		TotalFrames:     d.Meta.TotalFrames,
		ValidFrames:     d.Meta.ValidFrames,
		DiscardedFrames: d.Meta.DiscardedFrames,
		FramesKey:       framesKey(id),
		DashboardKey:    dashboardKey(id),
	}
	if cmd.Source != "" {
		src := cmd.Source
		a.Source = &src
	}
	return a
}
