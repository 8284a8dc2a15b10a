package health_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/palmwatch/internal/health"
)

func conf(v float64) *float64 {
	return &v
}

func TestRobustVoteMajority(t *testing.T) {
	v := health.RobustVote([]health.Observation{
		{Status: "healthy", Confidence: conf(0.9)},
		{Status: "healthy", Confidence: conf(0.8)},
		{Status: "unhealthy", Confidence: conf(0.95)},
	})

	if v.Status != "healthy" {
		t.Errorf("status: got %q, want healthy", v.Status)
	}
	if math.Abs(v.Confidence-0.765) > 1e-9 {
		t.Errorf("confidence: got %v, want 0.765", v.Confidence)
	}
	if v.Consensus == nil || *v.Consensus != 0.667 {
		t.Errorf("consensus: got %v, want 0.667", v.Consensus)
	}
	if v.TotalObservations != 3 {
		t.Errorf("total observations: got %d, want 3", v.TotalObservations)
	}
	if diff := cmp.Diff(map[string]int{"healthy": 2, "unhealthy": 1}, v.StatusDistribution); diff != "" {
		t.Errorf("distribution mismatch (-want +got):\n%s", diff)
	}
}

func TestRobustVoteEmpty(t *testing.T) {
	want := health.Vote{Status: health.Unknown}
	if diff := cmp.Diff(want, health.RobustVote(nil)); diff != "" {
		t.Errorf("vote mismatch (-want +got):\n%s", diff)
	}
}

func TestRobustVoteUnresolvable(t *testing.T) {
	got := health.RobustVote([]health.Observation{{}, {Status: "  "}})

	want := health.Vote{Status: health.Unknown, TotalObservations: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vote mismatch (-want +got):\n%s", diff)
	}
}

func TestRobustVoteTieKeepsFirstSeen(t *testing.T) {
	v := health.RobustVote([]health.Observation{
		{Status: "Critical", Confidence: conf(0.4)},
		{Status: "healthy", Confidence: conf(1)},
		{Status: "critical", Confidence: conf(0.6)},
		{Status: "healthy", Confidence: conf(1)},
	})

	if v.Status != "critical" {
		t.Errorf("status: got %q, want critical", v.Status)
	}
	if math.Abs(v.Confidence-0.425) > 1e-9 {
		t.Errorf("confidence: got %v, want 0.425", v.Confidence)
	}
}

func TestRobustVoteDefaultConfidence(t *testing.T) {
	v := health.RobustVote([]health.Observation{{Status: "healthy"}})

	if v.Confidence != 0.5 {
		t.Errorf("confidence: got %v, want 0.5", v.Confidence)
	}
}

func TestObservationUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantStatus string
		wantConf   *float64
	}{
		{"flat", `{"status": "healthy", "confidence": 0.9}`, "healthy", conf(0.9)},
		{"health fallback", `{"health": "unhealthy"}`, "unhealthy", nil},
		{"prediction fallback", `{"prediction": {"status": "bud_rot"}, "confidence": 0.7}`, "bud_rot", conf(0.7)},
		{"nested status", `{"status": {"prediction": "stem_bleeding", "confidence": 0.6}, "confidence": 0.1}`, "stem_bleeding", conf(0.6)},
		{"nested without confidence", `{"status": {"status": "critical"}}`, "critical", conf(0)},
		{"empty status uses health", `{"status": "", "health": "healthy"}`, "healthy", nil},
		{"missing", `{"confidence": 0.3}`, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o health.Observation
			if err := json.Unmarshal([]byte(tt.data), &o); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if o.Status != tt.wantStatus {
				t.Errorf("status: got %q, want %q", o.Status, tt.wantStatus)
			}
			if diff := cmp.Diff(tt.wantConf, o.Confidence); diff != "" {
				t.Errorf("confidence mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
