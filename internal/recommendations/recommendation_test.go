package recommendations_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/internal/recommendations"
)

func ptr[T any](v T) *T { return &v }

func TestRecommendIllness(t *testing.T) {
	c := recommendations.Default()

	got, err := c.Recommend("bud_rot", 65, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	want := recommendations.Recommendation{
		Disease:    "Bud Rot",
		Status:     recommendations.StatusIllness,
		Part:       "bud",
		Severity:   recommendations.SeverityMedium,
		Confidence: ptr(65.0),
		Fertilizers: []recommendations.Treatment{
			{Name: "Copper Oxychloride", Dose: "3 g/L", Apply: "Pour into crown (300-500 ml)"},
			{Name: "Carbendazim", Dose: "1 g/L", Apply: "Alternate weekly (crown pour)"},
		},
		Practices: []string{
			"Remove infected spindle leaf and rotten crown tissue carefully.",
			"Repeat crown treatment every 7 days (3 rounds).",
			"Disinfect tools after cutting infected parts.",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Recommend() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommendHealthy(t *testing.T) {
	c := recommendations.Default()

	tests := []struct {
		label    string
		part     string
		wantPart string
	}{
		{"healthy", "stem", "stem"},
		{"Leaves_Healthy", "leaf", "leaves"},
		{"healthy", "", "tree"},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.part, func(t *testing.T) {
			got, err := c.Recommend(tt.label, 90, tt.part)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if got.Status != recommendations.StatusHealthy {
				t.Errorf("status = %q, want healthy", got.Status)
			}
			if got.Part != tt.wantPart {
				t.Errorf("part = %q, want %q", got.Part, tt.wantPart)
			}
			if got.Severity != "" || got.Fertilizers != nil {
				t.Error("healthy advice should carry no severity or fertilizers")
			}
		})
	}
}

func TestRecommendErrors(t *testing.T) {
	c := recommendations.Default()

	tests := []struct {
		name       string
		label      string
		confidence float64
		want       error
	}{
		{"unknown label", "coconut_mite", 50, recommendations.ErrUnknownDisease},
		{"unhealthy is not healthy", "unhealthy", 50, recommendations.ErrUnknownDisease},
		{"negative confidence", "bud_rot", -1, recommendations.ErrInvalidConfidence},
		{"confidence above 100", "bud_rot", 120, recommendations.ErrInvalidConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Recommend(tt.label, tt.confidence, "")
			if !errors.Is(err, tt.want) {
				t.Errorf("Recommend() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromDashboard(t *testing.T) {
	c := recommendations.Default()

	d := health.Dashboard{
		Tree: health.TreeAggregate{
			Health:        health.Unhealthy,
			WeightedScore: 30,
			PrimaryIssue: &health.Issue{
				Disease:  "bud rot",
				Part:     "bud",
				Severity: health.SeverityCritical,
			},
		},
		Parts: map[string]health.PartAggregate{
			"bud": {
				Health:   health.Unhealthy,
				Diseases: map[string]float64{"bud rot": 70, "bud root dropping": 30},
			},
			"leaves": {
				Health:   health.Unhealthy,
				Diseases: map[string]float64{"Whitefly": 50, "Grey leaf rot": 50},
			},
			"stem": health.EmptyPart(),
		},
	}

	got := c.FromDashboard(d)

	if got.Tree.Disease != "Bud Rot" || got.Tree.Severity != recommendations.SeverityMedium {
		t.Errorf("tree = %q/%q, want Bud Rot/medium", got.Tree.Disease, got.Tree.Severity)
	}

	if got.Parts["bud"].Label != "bud rot" {
		t.Errorf("bud label = %q, want bud rot", got.Parts["bud"].Label)
	}

	// Equal percentages resolve to the lexically smallest label.
	if got.Parts["leaves"].Disease != "Grey Leaf Rot" {
		t.Errorf("leaves disease = %q, want Grey Leaf Rot", got.Parts["leaves"].Disease)
	}

	if got.Parts["stem"].Status != recommendations.StatusHealthy || got.Parts["stem"].Part != "stem" {
		t.Errorf("stem = %+v, want healthy stem practices", got.Parts["stem"])
	}
}

func TestFromDashboardHealthyTree(t *testing.T) {
	c := recommendations.Default()

	got := c.FromDashboard(health.Dashboard{Tree: health.EmptyTree()})

	if got.Tree.Status != recommendations.StatusHealthy || got.Tree.Part != recommendations.TreePart {
		t.Errorf("tree = %+v, want tree-wide healthy practices", got.Tree)
	}
	if len(got.Parts) != len(health.Parts()) {
		t.Errorf("parts = %d, want %d", len(got.Parts), len(health.Parts()))
	}
}

func TestFromDashboardUnknownDisease(t *testing.T) {
	c := recommendations.Default()

	got := c.FromDashboard(health.Dashboard{
		Parts: map[string]health.PartAggregate{
			"stem": {Diseases: map[string]float64{"stem canker": 100}},
		},
	})

	stem := got.Parts["stem"]
	if stem.Error == "" {
		t.Error("expected error for unknown disease")
	}
	if stem.Label != "stem canker" {
		t.Errorf("label = %q, want stem canker", stem.Label)
	}
}
