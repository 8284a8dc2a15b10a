package health

import "strings"

// Overall statuses produced by AssessTree in addition to the health verdicts.
const (
	StatusCritical        = "critical"
	StatusNeedsInspection = "needs_inspection"
	StatusNoData          = "no_data"
)

// PartAssessment is the robust vote for one part plus its observation count.
type PartAssessment struct {
	Part string `json:"part"`
	Vote
	Observations int `json:"observations"`
}

// Assessment is the tree-level result of the manual observation path.
type Assessment struct {
	Status           string                    `json:"overall_status"`
	Confidence       float64                   `json:"overall_confidence"`
	HealthPercentage float64                   `json:"health_percentage"`
	CriticalAlert    bool                      `json:"critical_alert"`
	PartsAssessed    int                       `json:"total_parts_assessed"`
	Parts            map[string]PartAssessment `json:"parts"`
}

// AssessTree votes each known part independently and combines the part
// statuses by priority: critical, then unhealthy, then healthy; any other
// mix needs inspection. Keys are folded like frame parts ("leaf" becomes
// "leaves"); observations for unrecognized parts are ignored.
func AssessTree(observations map[string][]Observation) Assessment {
	grouped := make(map[string][]Observation, len(observations))
	for part, obs := range observations {
		p := NormalizePart(part)
		grouped[p] = append(grouped[p], obs...)
	}

	result := Assessment{
		Status: Unknown,
		Parts:  make(map[string]PartAssessment, len(Parts())),
	}

	var statuses []string
	var healthyWeight, totalWeight float64

	for _, part := range Parts() {
		obs := grouped[part]
		if len(obs) == 0 {
			result.Parts[part] = PartAssessment{
				Part: part,
				Vote: Vote{Status: StatusNoData},
			}
			continue
		}

		vote := RobustVote(obs)
		result.Parts[part] = PartAssessment{
			Part:         part,
			Vote:         vote,
			Observations: len(obs),
		}

		if vote.Status == Unknown {
			continue
		}

		statuses = append(statuses, vote.Status)
		totalWeight += vote.Confidence
		if vote.Status == Healthy {
			healthyWeight += vote.Confidence
		}
	}

	result.PartsAssessed = len(statuses)
	if len(statuses) == 0 {
		return result
	}

	result.Status, result.Confidence = overall(statuses)
	result.CriticalAlert = result.Status == StatusCritical
	if totalWeight > 0 {
		result.HealthPercentage = round(healthyWeight/totalWeight*100, 2)
	}

	return result
}

func overall(statuses []string) (string, float64) {
	anyContains := func(subs ...string) bool {
		for _, s := range statuses {
			for _, sub := range subs {
				if strings.Contains(s, sub) {
					return true
				}
			}
		}
		return false
	}

	switch {
	case anyContains("critical", "rot", "bleeding"):
		return StatusCritical, 0.8
	case anyContains(Unhealthy):
		return Unhealthy, 0.7
	}

	for _, s := range statuses {
		if !strings.Contains(s, Healthy) {
			return StatusNeedsInspection, 0.5
		}
	}
	return Healthy, 0.9
}
