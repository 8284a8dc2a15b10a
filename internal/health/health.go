// Package health reduces per-frame palm classifier output into a single,
// internally consistent health dashboard.
//
// Raw prediction records are normalized into canonical frames, filtered by
// reliability and out-of-distribution signals, aggregated per anatomical part,
// and combined into a tree verdict with a primary disease. A lighter robust
// voting reducer serves the manual observation path where no per-frame
// reliability is available.
//
// Every function in this package is pure: no I/O, no shared mutable state.
package health

import "math"

// Known anatomical parts.
const (
	Stem   = "stem"
	Leaves = "leaves"
	Bud    = "bud"
)

// Health verdicts.
const (
	Healthy   = "healthy"
	Unhealthy = "unhealthy"
	Unknown   = "unknown"
)

// UnknownStatus is the sentinel status assigned to frames whose label is
// missing or incompatible with their part.
const UnknownStatus = "Unknown"

// Primary issue severities.
const (
	SeverityLocalized = "localized"
	SeverityCritical  = "critical"
)

// HealthyLocalizedNote annotates the primary issue of a tree that is healthy
// overall but still carries a diseased part.
const HealthyLocalizedNote = "Tree is healthy overall with a localized part issue"

// Parts lists the known anatomical parts in reporting order.
func Parts() []string {
	return []string{Stem, Leaves, Bud}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// weight bounds a reliability value to the [0, 100] scale before it is
// used as an aggregation weight.
func weight(reliability float64) float64 {
	return min(max(finite(reliability), 0), 100)
}
