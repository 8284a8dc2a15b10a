package health

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PartAggregate is the reduced health record for one anatomical part.
type PartAggregate struct {
	Health              string             `json:"health"`
	Score               float64            `json:"score"`
	WeightedScore       float64            `json:"weighted_score"`
	Frames              int                `json:"frames"`
	AvgPartConfidence   float64            `json:"avg_part_confidence"`
	AvgStatusConfidence float64            `json:"avg_status_confidence"`
	Diseases            map[string]float64 `json:"diseases"`
}

// EmptyPart is the placeholder reported for a part with no valid frames.
func EmptyPart() PartAggregate {
	return PartAggregate{
		Health:   Unknown,
		Diseases: map[string]float64{},
	}
}

// aggregatePart reduces the valid frames declared for part. Frames for other
// parts are ignored.
func (a *Aggregator) aggregatePart(part string, valid []Frame) PartAggregate {
	frames := make([]Frame, 0, len(valid))
	for _, f := range valid {
		if f.Part.Prediction == part {
			frames = append(frames, f)
		}
	}

	if len(frames) == 0 {
		return EmptyPart()
	}

	partConf := make([]float64, len(frames))
	statusConf := make([]float64, len(frames))
	for i, f := range frames {
		partConf[i] = finite(f.Part.Confidence)
		statusConf[i] = finite(f.Status.Confidence)
	}

	score, weighted := scores(frames)

	agg := PartAggregate{
		Health:              a.verdict(weighted),
		Score:               score,
		WeightedScore:       weighted,
		Frames:              len(frames),
		AvgPartConfidence:   round(stat.Mean(partConf, nil), 2),
		AvgStatusConfidence: round(stat.Mean(statusConf, nil), 2),
		Diseases:            map[string]float64{},
	}

	weights := make(map[string]float64)
	for _, f := range frames {
		if f.IsHealthy() || !a.diseased(f) {
			continue
		}
		weights[f.Status.Prediction] += weight(f.Reliability)
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total > 0 {
		for disease, w := range weights {
			agg.Diseases[disease] = round(w/total*100, 2)
		}
	}

	return agg
}

// diseased reports whether the frame's status is a disease label that is
// valid for the frame's declared part.
func (a *Aggregator) diseased(f Frame) bool {
	s := f.Status.Prediction
	if s == "" || s == Healthy || s == UnknownStatus {
		return false
	}
	return a.table.IsValid(f.Part.Prediction, s)
}

func (a *Aggregator) verdict(weighted float64) string {
	if weighted >= a.cfg.TreeThreshold {
		return Healthy
	}
	return Unhealthy
}

// scores returns the simple and reliability-weighted healthy percentages.
// A zero reliability total is replaced by 1.
func scores(frames []Frame) (float64, float64) {
	if len(frames) == 0 {
		return 0, 0
	}

	all := make([]float64, len(frames))
	healthy := make([]float64, 0, len(frames))
	for i, f := range frames {
		all[i] = weight(f.Reliability)
		if f.IsHealthy() {
			healthy = append(healthy, all[i])
		}
	}

	denominator := floats.Sum(all)
	if denominator == 0 {
		denominator = 1
	}

	score := float64(len(healthy)) / float64(len(frames)) * 100
	weighted := floats.Sum(healthy) / denominator * 100

	return round(score, 2), round(weighted, 2)
}
