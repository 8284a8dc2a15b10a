package health

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LabelKind identifies which shape a classifier emitted for a part or status.
type LabelKind int

const (
	// LabelAbsent means the field was missing, null, or of an unusable type.
	LabelAbsent LabelKind = iota
	// LabelPlain is a bare string prediction with no confidence.
	LabelPlain
	// LabelStructured is a {prediction, confidence} object.
	LabelStructured
)

// RawLabel is the boundary form of a part or status field. It is resolved
// into a Label by the Normalizer and never travels further.
type RawLabel struct {
	Kind       LabelKind
	Prediction string
	Confidence float64
}

// Plain returns a RawLabel carrying a bare prediction.
func Plain(prediction string) RawLabel {
	return RawLabel{Kind: LabelPlain, Prediction: prediction}
}

// Structured returns a RawLabel carrying a prediction with its confidence.
func Structured(prediction string, confidence float64) RawLabel {
	return RawLabel{Kind: LabelStructured, Prediction: prediction, Confidence: confidence}
}

// UnmarshalJSON accepts either a JSON string or a {prediction, confidence}
// object. Other shapes decode to an absent label rather than failing.
func (l *RawLabel) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = rawLabelOf(v)
	return nil
}

// MarshalJSON writes plain labels as strings and structured labels as objects.
func (l RawLabel) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LabelPlain:
		return json.Marshal(l.Prediction)
	case LabelStructured:
		return json.Marshal(Label{Prediction: l.Prediction, Confidence: l.Confidence})
	default:
		return []byte("null"), nil
	}
}

// Resolve collapses the label into its canonical form. Plain labels carry
// zero confidence.
func (l RawLabel) Resolve() Label {
	switch l.Kind {
	case LabelPlain:
		return Label{Prediction: l.Prediction}
	case LabelStructured:
		return Label{Prediction: l.Prediction, Confidence: finite(l.Confidence)}
	default:
		return Label{}
	}
}

// Label is the canonical prediction/confidence pair. Confidence is on the
// 0-100 scale.
type Label struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// RawFrame is one prediction record as emitted by the upstream classifier.
// It decodes both the nested pipeline shape, where classifier fields sit
// under a "prediction" object beside frame_index/class/file, and the flat
// shape where every field is top-level.
type RawFrame struct {
	FrameIndex        *int     `json:"frame_index,omitempty"`
	Class             string   `json:"class,omitempty"`
	File              string   `json:"file,omitempty"`
	ImagePath         string   `json:"image_path,omitempty"`
	Part              RawLabel `json:"part"`
	Status            RawLabel `json:"status"`
	Health            string   `json:"health,omitempty"`
	Combined          string   `json:"combined,omitempty"`
	Reliability       float64  `json:"reliability"`
	OutOfDistribution bool     `json:"is_out_of_distribution"`
	OODReason         string   `json:"ood_reason,omitempty"`
	OODSignals        any      `json:"ood_signals,omitempty"`
}

// UnmarshalJSON decodes a raw record tolerantly. Missing or mistyped fields
// fall back to zero values; only syntactically invalid JSON or a non-object
// record returns an error.
func (f *RawFrame) UnmarshalJSON(data []byte) error {
	var top map[string]any
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}

	detail := top
	if nested, ok := top["prediction"].(map[string]any); ok {
		detail = nested
	}

	lookup := func(key string) any {
		if v, ok := detail[key]; ok && v != nil {
			return v
		}
		return top[key]
	}

	*f = RawFrame{
		Class:             stringOf(top["class"]),
		File:              stringOf(top["file"]),
		ImagePath:         stringOf(lookup("image_path")),
		Part:              rawLabelOf(lookup("part")),
		Status:            rawLabelOf(lookup("status")),
		Health:            stringOf(lookup("health")),
		Combined:          stringOf(lookup("combined")),
		Reliability:       numberOf(lookup("reliability")),
		OutOfDistribution: truthy(lookup("is_out_of_distribution")),
		OODReason:         stringOf(lookup("ood_reason")),
		OODSignals:        lookup("ood_signals"),
	}

	if idx, ok := intOf(top["frame_index"]); ok {
		f.FrameIndex = &idx
	}

	return nil
}

// Frame is the canonical, immutable prediction frame consumed by the
// aggregation pipeline.
type Frame struct {
	FrameIndex        *int    `json:"frame_index"`
	Class             string  `json:"class,omitempty"`
	ImagePath         string  `json:"image_path,omitempty"`
	Part              Label   `json:"part"`
	Status            Label   `json:"status"`
	Health            string  `json:"health"`
	Combined          string  `json:"combined,omitempty"`
	Reliability       float64 `json:"reliability"`
	OutOfDistribution bool    `json:"is_out_of_distribution"`
	OODReason         string  `json:"ood_reason,omitempty"`
	OODSignals        any     `json:"ood_signals,omitempty"`
}

// IsHealthy reports whether the frame's coarse health flag is "healthy".
func (f Frame) IsHealthy() bool {
	return f.Health == Healthy
}

func rawLabelOf(v any) RawLabel {
	switch t := v.(type) {
	case string:
		return Plain(t)
	case map[string]any:
		return Structured(stringOf(t["prediction"]), numberOf(t["confidence"]))
	default:
		return RawLabel{}
	}
}

func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func numberOf(v any) float64 {
	switch t := v.(type) {
	case float64:
		return finite(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return finite(f)
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func intOf(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}
