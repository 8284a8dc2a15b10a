package health

import "strings"

// Normalizer converts raw classifier records into canonical frames and
// enforces part/status compatibility.
type Normalizer struct {
	table *Table
}

// NewNormalizer creates a Normalizer bound to a compatibility table.
// A nil table selects DefaultTable.
func NewNormalizer(table *Table) *Normalizer {
	if table == nil {
		table = DefaultTable()
	}
	return &Normalizer{table: table}
}

// Normalize produces the canonical frame for one raw record.
//
// Part names are trimmed, lowercased, and "leaf" is folded into "leaves".
// A missing status becomes UnknownStatus. A status outside the part's
// declared set is demoted to UnknownStatus while its confidence is kept.
func (n *Normalizer) Normalize(raw RawFrame) Frame {
	part := raw.Part.Resolve()
	part.Prediction = NormalizePart(part.Prediction)

	status := raw.Status.Resolve()
	status.Prediction = strings.TrimSpace(status.Prediction)
	if status.Prediction == "" {
		status.Prediction = UnknownStatus
	}

	if status.Prediction != UnknownStatus &&
		n.table.Has(part.Prediction) &&
		!n.table.IsValid(part.Prediction, status.Prediction) {
		status.Prediction = UnknownStatus
	}

	imagePath := raw.ImagePath
	if imagePath == "" {
		imagePath = raw.File
	}

	return Frame{
		FrameIndex:        raw.FrameIndex,
		Class:             raw.Class,
		ImagePath:         imagePath,
		Part:              part,
		Status:            status,
		Health:            raw.Health,
		Combined:          raw.Combined,
		Reliability:       finite(raw.Reliability),
		OutOfDistribution: raw.OutOfDistribution,
		OODReason:         raw.OODReason,
		OODSignals:        raw.OODSignals,
	}
}

// Candidates normalizes every record and keeps only frames that carry an
// actionable signal: a known status and a non-empty part. It returns the
// candidate pool and the number of records discarded.
func (n *Normalizer) Candidates(raws []RawFrame) ([]Frame, int) {
	frames := make([]Frame, 0, len(raws))
	for _, raw := range raws {
		f := n.Normalize(raw)
		if !actionable(f) {
			continue
		}
		frames = append(frames, f)
	}
	return frames, len(raws) - len(frames)
}

func actionable(f Frame) bool {
	return f.Part.Prediction != "" && f.Status.Prediction != UnknownStatus
}

// NormalizePart trims and lowercases a part name and folds "leaf" into "leaves".
func NormalizePart(part string) string {
	part = strings.ToLower(strings.TrimSpace(part))
	if part == "leaf" {
		return Leaves
	}
	return part
}
