package recommendations

import (
	"fmt"
	"math"
	"slices"

	"github.com/JaimeStill/palmwatch/internal/health"
)

// Recommendation statuses.
const (
	StatusHealthy = "healthy"
	StatusIllness = "illness"
)

// HealthyDisease is the disease name reported for healthy recommendations.
const HealthyDisease = "Healthy"

// Recommendation is the treatment advice for one finding. Severity,
// confidence, and fertilizers are set only for illnesses. Error is set when
// a dashboard names a disease the catalog does not know.
type Recommendation struct {
	Disease     string      `json:"disease"`
	Status      string      `json:"status"`
	Part        string      `json:"part"`
	Severity    string      `json:"severity,omitempty"`
	Confidence  *float64    `json:"confidence,omitempty"`
	Fertilizers []Treatment `json:"fertilizers,omitempty"`
	Practices   []string    `json:"practices"`
	Label       string      `json:"label,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// DashboardAdvice holds the tree-level recommendation and one per known part.
type DashboardAdvice struct {
	Tree  Recommendation            `json:"tree"`
	Parts map[string]Recommendation `json:"parts"`
}

// Recommend returns advice for a predicted label with a 0-100 confidence.
// Healthy labels yield the care practices for part; disease labels yield the
// catalog entry for the severity band of confidence.
func (c *Catalog) Recommend(label string, confidence float64, part string) (Recommendation, error) {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 100 {
		return Recommendation{}, ErrInvalidConfidence
	}

	key := NormalizeLabel(label)
	if IsHealthyLabel(key) {
		p, practices := c.HealthyPractices(part)
		return Recommendation{
			Disease:   HealthyDisease,
			Status:    StatusHealthy,
			Part:      p,
			Practices: practices,
		}, nil
	}

	d, ok := c.labels[key]
	if !ok {
		return Recommendation{}, fmt.Errorf("%w: %q", ErrUnknownDisease, label)
	}

	severity := SeverityFor(confidence)
	return Recommendation{
		Disease:     d.Name,
		Status:      StatusIllness,
		Part:        d.Part,
		Severity:    severity,
		Confidence:  &confidence,
		Fertilizers: d.Fertilizers[severity],
		Practices:   d.Practices[severity],
	}, nil
}

// FromDashboard derives advice from a dashboard supplied by the caller. Each
// known part is advised on its most prevalent disease, using that disease's
// percentage as confidence, or receives healthy practices when it has none.
// The tree entry follows the primary issue when one is present.
func (c *Catalog) FromDashboard(d health.Dashboard) DashboardAdvice {
	advice := DashboardAdvice{
		Parts: make(map[string]Recommendation, len(health.Parts())),
	}

	for _, part := range health.Parts() {
		agg, ok := d.Parts[part]
		disease, pct, found := topDisease(agg.Diseases)
		if !ok || !found {
			advice.Parts[part] = c.healthyFor(part)
			continue
		}
		advice.Parts[part] = c.adviseOn(disease, pct, part)
	}

	issue := d.Tree.PrimaryIssue
	if issue == nil {
		advice.Tree = c.healthyFor(TreePart)
		return advice
	}

	pct, ok := d.Parts[issue.Part].Diseases[issue.Disease]
	if !ok {
		pct = math.Max(0, 100-d.Tree.WeightedScore)
	}
	advice.Tree = c.adviseOn(issue.Disease, pct, issue.Part)
	return advice
}

func (c *Catalog) healthyFor(part string) Recommendation {
	rec, _ := c.Recommend(health.Healthy, 0, part)
	return rec
}

func (c *Catalog) adviseOn(disease string, pct float64, part string) Recommendation {
	pct = math.Min(math.Max(pct, 0), 100)
	rec, err := c.Recommend(disease, pct, part)
	if err != nil {
		return Recommendation{
			Disease:    disease,
			Status:     StatusIllness,
			Part:       part,
			Confidence: &pct,
			Practices:  []string{},
			Label:      disease,
			Error:      ErrUnknownDisease.Error(),
		}
	}
	rec.Label = disease
	return rec
}

// topDisease returns the disease with the highest percentage. Ties resolve
// to the lexically smallest label.
func topDisease(diseases map[string]float64) (string, float64, bool) {
	if len(diseases) == 0 {
		return "", 0, false
	}

	labels := make([]string, 0, len(diseases))
	for k := range diseases {
		labels = append(labels, k)
	}
	slices.Sort(labels)

	best := labels[0]
	for _, l := range labels[1:] {
		if diseases[l] > diseases[best] {
			best = l
		}
	}
	return best, diseases[best], true
}
