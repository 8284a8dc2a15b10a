package health

import (
	"encoding/json"
	"strings"
)

// DefaultObservationConfidence is assumed for observations without a
// confidence value.
const DefaultObservationConfidence = 0.5

// Observation is one recorded status for a tree part. Confidence is on the
// 0-1 scale; nil means the observation carried none.
type Observation struct {
	Status     string   `json:"status"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// UnmarshalJSON resolves the status from "status", then "health", then
// "prediction.status". A status given as a {prediction|status, confidence}
// object supplies its own confidence, defaulting to 0.
func (o *Observation) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	*o = Observation{}

	status := firstPresent(m["status"], m["health"])
	if status == nil {
		if nested, ok := m["prediction"].(map[string]any); ok {
			status = firstPresent(nested["status"])
		}
	}

	switch s := status.(type) {
	case map[string]any:
		o.Status = stringOf(firstPresent(s["prediction"], s["status"]))
		c := numberOf(s["confidence"])
		o.Confidence = &c
	case nil:
	default:
		o.Status = stringOf(s)
		if raw, ok := m["confidence"]; ok && raw != nil {
			c := numberOf(raw)
			o.Confidence = &c
		}
	}

	return nil
}

// firstPresent returns the first value that is neither nil nor an empty string.
func firstPresent(values ...any) any {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return v
	}
	return nil
}

// Vote is the result of reducing observations by robust majority voting.
type Vote struct {
	Status             string         `json:"status"`
	Confidence         float64        `json:"confidence"`
	TotalObservations  int            `json:"total_observations"`
	Consensus          *float64       `json:"consensus,omitempty"`
	StatusDistribution map[string]int `json:"status_distribution,omitempty"`
}

// RobustVote reduces observations to their most frequent status.
//
// Statuses are trimmed and lowercased. Ties resolve to the status seen
// first. The returned confidence is the mean confidence of the winning
// observations dampened by consensus: avg * (0.7 + 0.3 * consensus).
func RobustVote(observations []Observation) Vote {
	if len(observations) == 0 {
		return Vote{Status: Unknown}
	}

	statuses := make([]string, 0, len(observations))
	confidences := make([]float64, 0, len(observations))

	for _, o := range observations {
		s := strings.ToLower(strings.TrimSpace(o.Status))
		if s == "" {
			continue
		}
		c := DefaultObservationConfidence
		if o.Confidence != nil {
			c = finite(*o.Confidence)
		}
		statuses = append(statuses, s)
		confidences = append(confidences, c)
	}

	if len(statuses) == 0 {
		return Vote{Status: Unknown, TotalObservations: len(observations)}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, s := range statuses {
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	mode := order[0]
	for _, s := range order[1:] {
		if counts[s] > counts[mode] {
			mode = s
		}
	}

	sum := 0.0
	for i, s := range statuses {
		if s == mode {
			sum += confidences[i]
		}
	}
	avg := sum / float64(counts[mode])

	consensus := float64(counts[mode]) / float64(len(statuses))
	rounded := round(consensus, 3)

	return Vote{
		Status:             mode,
		Confidence:         round(avg*(0.7+0.3*consensus), 3),
		TotalObservations:  len(observations),
		Consensus:          &rounded,
		StatusDistribution: counts,
	}
}
