package health

// Meta holds frame-count diagnostics for a dashboard.
type Meta struct {
	TotalFrames         int `json:"total_frames"`
	ValidFrames         int `json:"valid_frames"`
	OODFrames           int `json:"ood_frames"`
	LowConfidenceFrames int `json:"low_confidence_frames"`
	DiscardedFrames     int `json:"discarded_frames"`
}

// admits is the pipeline-stage gate: a frame contributes to statistics only
// if it is in-distribution, meets the reliability floor, and carries an
// actionable part and status.
func (a *Aggregator) admits(f Frame) bool {
	if f.OutOfDistribution {
		return false
	}
	if f.Reliability < a.cfg.MinReliability {
		return false
	}
	return actionable(f)
}

// Valid returns the frames that pass the pipeline-stage filter, preserving order.
func (a *Aggregator) Valid(frames []Frame) []Frame {
	valid := make([]Frame, 0, len(frames))
	for _, f := range frames {
		if a.admits(f) {
			valid = append(valid, f)
		}
	}
	return valid
}

// meta counts diagnostics over the pre-filter frame list. The OOD and
// low-confidence counts do not depend on whether a frame was excluded.
func (a *Aggregator) meta(frames []Frame, valid int) Meta {
	m := Meta{
		TotalFrames: len(frames),
		ValidFrames: valid,
	}
	for _, f := range frames {
		if f.OutOfDistribution {
			m.OODFrames++
		}
		if f.Reliability < a.cfg.LowConfidenceThreshold {
			m.LowConfidenceFrames++
		}
	}
	return m
}
