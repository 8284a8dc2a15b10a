package health

// Issue describes the dominant disease finding for a tree.
type Issue struct {
	Disease  string `json:"disease"`
	Part     string `json:"part"`
	Severity string `json:"severity"`
	Note     string `json:"note,omitempty"`
}

// TreeAggregate is the overall verdict for a tree.
//
// PrimaryDisease is set only when the tree is unhealthy. A healthy tree that
// still shows a disease reports it through PrimaryIssue with a note.
type TreeAggregate struct {
	Health         string  `json:"health"`
	Score          float64 `json:"score"`
	WeightedScore  float64 `json:"weighted_score"`
	PrimaryDisease *string `json:"primary_disease"`
	PrimaryIssue   *Issue  `json:"primary_issue"`
}

// EmptyTree is the aggregate reported when no frame survives filtering.
func EmptyTree() TreeAggregate {
	return TreeAggregate{Health: Unknown}
}

func (a *Aggregator) aggregateTree(valid []Frame) TreeAggregate {
	if len(valid) == 0 {
		return EmptyTree()
	}

	score, weighted := scores(valid)
	tree := TreeAggregate{
		Health:        a.verdict(weighted),
		Score:         score,
		WeightedScore: weighted,
	}

	disease, part, ok := a.primary(valid)
	if !ok {
		return tree
	}

	if tree.Health == Unhealthy {
		severity := SeverityCritical
		if weighted > 50 {
			severity = SeverityLocalized
		}
		tree.PrimaryDisease = &disease
		tree.PrimaryIssue = &Issue{
			Disease:  disease,
			Part:     part,
			Severity: severity,
		}
		return tree
	}

	tree.PrimaryIssue = &Issue{
		Disease:  disease,
		Part:     part,
		Severity: SeverityLocalized,
		Note:     HealthyLocalizedNote,
	}
	return tree
}

// primary selects the disease with the highest accumulated reliability over
// unhealthy, part-compatible frames. Equal weights resolve to the lexically
// smallest disease; the associated part is the one contributing the most
// weight to that disease, again resolving ties lexically.
func (a *Aggregator) primary(valid []Frame) (string, string, bool) {
	byDisease := make(map[string]float64)
	byPart := make(map[string]map[string]float64)

	for _, f := range valid {
		if f.IsHealthy() || !a.diseased(f) {
			continue
		}
		d, p, w := f.Status.Prediction, f.Part.Prediction, weight(f.Reliability)
		byDisease[d] += w
		if byPart[d] == nil {
			byPart[d] = make(map[string]float64)
		}
		byPart[d][p] += w
	}

	disease, ok := heaviest(byDisease)
	if !ok {
		return "", "", false
	}
	part, _ := heaviest(byPart[disease])
	return disease, part, true
}

func heaviest(weights map[string]float64) (string, bool) {
	best, bestWeight, found := "", 0.0, false
	for k, w := range weights {
		if !found || w > bestWeight || (w == bestWeight && k < best) {
			best, bestWeight, found = k, w, true
		}
	}
	return best, found
}
