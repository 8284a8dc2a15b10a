package health_test

import (
	"testing"

	"github.com/JaimeStill/palmwatch/internal/health"
)

func TestNormalize(t *testing.T) {
	n := health.NewNormalizer(nil)

	tests := []struct {
		name       string
		raw        health.RawFrame
		wantPart   string
		wantStatus string
		wantConf   float64
	}{
		{
			name:       "leaf alias",
			raw:        health.RawFrame{Part: health.Plain("leaf"), Status: health.Plain("Whitefly")},
			wantPart:   "leaves",
			wantStatus: "Whitefly",
		},
		{
			name:       "missing status",
			raw:        health.RawFrame{Part: health.Plain("stem")},
			wantPart:   "stem",
			wantStatus: health.UnknownStatus,
		},
		{
			name:       "blank status",
			raw:        health.RawFrame{Part: health.Plain("stem"), Status: health.Plain("  ")},
			wantPart:   "stem",
			wantStatus: health.UnknownStatus,
		},
		{
			name:       "incompatible status demoted keeps confidence",
			raw:        health.RawFrame{Part: health.Plain("bud"), Status: health.Structured("leaf rot", 88)},
			wantPart:   "bud",
			wantStatus: health.UnknownStatus,
			wantConf:   88,
		},
		{
			name:       "unrecognized part is not demoted",
			raw:        health.RawFrame{Part: health.Plain("trunk"), Status: health.Plain("leaf rot")},
			wantPart:   "trunk",
			wantStatus: "leaf rot",
		},
		{
			name:       "compatible structured status",
			raw:        health.RawFrame{Part: health.Structured("Stem", 70), Status: health.Structured("stem bleeding", 55.5)},
			wantPart:   "stem",
			wantStatus: "stem bleeding",
			wantConf:   55.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := n.Normalize(tt.raw)
			if f.Part.Prediction != tt.wantPart {
				t.Errorf("part: got %q, want %q", f.Part.Prediction, tt.wantPart)
			}
			if f.Status.Prediction != tt.wantStatus {
				t.Errorf("status: got %q, want %q", f.Status.Prediction, tt.wantStatus)
			}
			if f.Status.Confidence != tt.wantConf {
				t.Errorf("status confidence: got %v, want %v", f.Status.Confidence, tt.wantConf)
			}
		})
	}
}

func TestNormalizePassesSideChannel(t *testing.T) {
	idx := 4
	raw := health.RawFrame{
		FrameIndex:        &idx,
		File:              "f4.jpg",
		Part:              health.Plain("bud"),
		Status:            health.Plain("bud rot"),
		Health:            "unhealthy",
		Combined:          "bud_rot",
		Reliability:       73,
		OutOfDistribution: true,
		OODReason:         "low texture",
	}

	f := health.NewNormalizer(nil).Normalize(raw)

	if f.FrameIndex == nil || *f.FrameIndex != 4 {
		t.Errorf("frame_index: got %v", f.FrameIndex)
	}
	if f.ImagePath != "f4.jpg" {
		t.Errorf("image_path: got %q, want f4.jpg", f.ImagePath)
	}
	if f.Health != "unhealthy" || f.Combined != "bud_rot" {
		t.Errorf("health/combined: got %q/%q", f.Health, f.Combined)
	}
	if f.Reliability != 73 || !f.OutOfDistribution || f.OODReason != "low texture" {
		t.Errorf("reliability/ood: got %v/%v/%q", f.Reliability, f.OutOfDistribution, f.OODReason)
	}
}

func TestCandidates(t *testing.T) {
	raws := []health.RawFrame{
		{Part: health.Plain("stem"), Status: health.Plain("healthy")},
		{Part: health.Plain("bud"), Status: health.Plain("leaf rot")},
		{Status: health.Plain("healthy")},
		{Part: health.Plain("leaves")},
		{Part: health.Plain("leaf"), Status: health.Plain("leaf rot")},
	}

	frames, discarded := health.NewNormalizer(nil).Candidates(raws)

	if len(frames) != 2 {
		t.Fatalf("candidates: got %d, want 2", len(frames))
	}
	if discarded != 3 {
		t.Errorf("discarded: got %d, want 3", discarded)
	}
	if frames[1].Part.Prediction != "leaves" {
		t.Errorf("second candidate part: got %q, want leaves", frames[1].Part.Prediction)
	}
}

func TestNormalizePart(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"stem", "stem"},
		{"Stem", "stem"},
		{"  BUD ", "bud"},
		{"leaf", "leaves"},
		{"Leaf", "leaves"},
		{"leaves", "leaves"},
		{"trunk", "trunk"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := health.NormalizePart(tt.in); got != tt.want {
				t.Errorf("NormalizePart(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
