package health_test

import (
	"testing"

	"github.com/JaimeStill/palmwatch/internal/health"
)

func TestAssessTree(t *testing.T) {
	tests := []struct {
		name         string
		observations map[string][]health.Observation
		wantStatus   string
		wantPercent  float64
		wantCritical bool
		wantAssessed int
	}{
		{
			name:       "no observations",
			wantStatus: health.Unknown,
		},
		{
			name: "all healthy",
			observations: map[string][]health.Observation{
				"stem":   {{Status: "healthy", Confidence: conf(0.9)}},
				"leaves": {{Status: "healthy", Confidence: conf(0.8)}},
				"bud":    {{Status: "healthy", Confidence: conf(0.7)}},
			},
			wantStatus:   health.Healthy,
			wantPercent:  100,
			wantAssessed: 3,
		},
		{
			name: "parts without observations not counted",
			observations: map[string][]health.Observation{
				"stem":   {{Status: "healthy", Confidence: conf(0.9)}},
				"leaves": {},
			},
			wantStatus:   health.Healthy,
			wantPercent:  100,
			wantAssessed: 1,
		},
		{
			name: "disease escalates to critical",
			observations: map[string][]health.Observation{
				"stem": {{Status: "healthy", Confidence: conf(0.6)}},
				"bud":  {{Status: "bud_rot", Confidence: conf(0.6)}},
			},
			wantStatus:   health.StatusCritical,
			wantPercent:  50,
			wantCritical: true,
			wantAssessed: 2,
		},
		{
			name: "unhealthy",
			observations: map[string][]health.Observation{
				"leaf": {{Status: "unhealthy", Confidence: conf(1)}},
				"stem": {{Status: "healthy", Confidence: conf(1)}},
			},
			wantStatus:   health.Unhealthy,
			wantPercent:  50,
			wantAssessed: 2,
		},
		{
			name: "mixed without priority label",
			observations: map[string][]health.Observation{
				"bud":  {{Status: "bud_root_dropping", Confidence: conf(0.8)}},
				"stem": {{Status: "healthy", Confidence: conf(0.8)}},
			},
			wantStatus:   health.StatusNeedsInspection,
			wantPercent:  50,
			wantAssessed: 2,
		},
		{
			name: "unknown parts ignored",
			observations: map[string][]health.Observation{
				"trunk": {{Status: "critical", Confidence: conf(1)}},
			},
			wantStatus: health.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := health.AssessTree(tt.observations)

			if got.Status != tt.wantStatus {
				t.Errorf("status: got %q, want %q", got.Status, tt.wantStatus)
			}
			if got.HealthPercentage != tt.wantPercent {
				t.Errorf("health percentage: got %v, want %v", got.HealthPercentage, tt.wantPercent)
			}
			if got.CriticalAlert != tt.wantCritical {
				t.Errorf("critical alert: got %v, want %v", got.CriticalAlert, tt.wantCritical)
			}
			if got.PartsAssessed != tt.wantAssessed {
				t.Errorf("parts assessed: got %d, want %d", got.PartsAssessed, tt.wantAssessed)
			}
			if len(got.Parts) != 3 {
				t.Errorf("parts: got %d entries, want 3", len(got.Parts))
			}
		})
	}
}

func TestAssessTreeNoDataPlaceholder(t *testing.T) {
	got := health.AssessTree(map[string][]health.Observation{
		"stem": {{Status: "healthy"}},
	})

	bud := got.Parts["bud"]
	if bud.Status != health.StatusNoData || bud.Observations != 0 || bud.Confidence != 0 {
		t.Errorf("bud placeholder: got %+v", bud)
	}

	stem := got.Parts["stem"]
	if stem.Observations != 1 || stem.Part != "stem" {
		t.Errorf("stem: got %+v", stem)
	}
}
