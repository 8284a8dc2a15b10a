// Package recommendations maps disease findings to treatment advice: a
// fertilizer schedule and field practices scaled by severity, or general
// care practices for healthy parts.
package recommendations

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/palmwatch/internal/health"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Severity bands derived from a 0-100 confidence.
const (
	SeverityMild   = "mild"
	SeverityMedium = "medium"
	SeveritySevere = "severe"
)

// TreePart is the key of the general care practices used when no part is
// given or the part is not recognized.
const TreePart = "tree"

// Treatment is one fertilizer or fungicide application.
type Treatment struct {
	Name  string `json:"name" yaml:"name"`
	Dose  string `json:"dose" yaml:"dose"`
	Apply string `json:"apply" yaml:"apply"`
}

// Disease is a catalog entry with per-severity treatments and practices.
type Disease struct {
	Key         string                 `json:"key" yaml:"-"`
	Name        string                 `json:"name" yaml:"name"`
	Part        string                 `json:"part" yaml:"part"`
	Aliases     []string               `json:"aliases,omitempty" yaml:"aliases"`
	Fertilizers map[string][]Treatment `json:"fertilizers" yaml:"fertilizers"`
	Practices   map[string][]string    `json:"practices" yaml:"practices"`
}

// Catalog is an immutable treatment catalog indexed by normalized label.
type Catalog struct {
	healthy  map[string][]string
	diseases map[string]*Disease
	labels   map[string]*Disease
}

type catalogFile struct {
	HealthyPractices map[string][]string `yaml:"healthy_practices"`
	Diseases         map[string]*Disease `yaml:"diseases"`
}

var defaultCatalog = mustCatalog(catalogYAML)

// Default returns the embedded coconut palm treatment catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Parse builds a Catalog from YAML. Every disease must name a part and carry
// fertilizers and practices for all three severities, and the healthy
// practices must include the tree default.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if len(f.HealthyPractices[TreePart]) == 0 {
		return nil, fmt.Errorf("%w: missing %s healthy practices", ErrInvalidCatalog, TreePart)
	}

	c := &Catalog{
		healthy:  f.HealthyPractices,
		diseases: make(map[string]*Disease, len(f.Diseases)),
		labels:   make(map[string]*Disease),
	}

	for key, d := range f.Diseases {
		if d == nil || d.Part == "" || d.Name == "" {
			return nil, fmt.Errorf("%w: disease %q needs a name and part", ErrInvalidCatalog, key)
		}
		for _, s := range Severities() {
			if len(d.Fertilizers[s]) == 0 || len(d.Practices[s]) == 0 {
				return nil, fmt.Errorf("%w: disease %q missing %s severity", ErrInvalidCatalog, key, s)
			}
		}

		d.Key = NormalizeLabel(key)
		c.diseases[d.Key] = d

		for _, label := range append([]string{d.Key}, d.Aliases...) {
			label = NormalizeLabel(label)
			if other, ok := c.labels[label]; ok && other != d {
				return nil, fmt.Errorf("%w: label %q used by %q and %q", ErrInvalidCatalog, label, other.Key, d.Key)
			}
			c.labels[label] = d
		}
	}

	return c, nil
}

func mustCatalog(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Severities lists the severity bands from least to most severe.
func Severities() []string {
	return []string{SeverityMild, SeverityMedium, SeveritySevere}
}

// SeverityFor maps a 0-100 confidence to a severity band: up to 40 is
// mild, up to 80 is medium, anything above is severe.
func SeverityFor(confidence float64) string {
	switch {
	case confidence <= 40:
		return SeverityMild
	case confidence <= 80:
		return SeverityMedium
	default:
		return SeveritySevere
	}
}

// NormalizeLabel trims and lowercases a label and replaces spaces and
// hyphens with underscores, so "Grey leaf rot" becomes "grey_leaf_rot".
func NormalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(label)
}

// IsHealthyLabel reports whether a normalized label denotes a healthy part.
func IsHealthyLabel(label string) bool {
	return strings.Contains(label, health.Healthy) && !strings.Contains(label, health.Unhealthy)
}

// Lookup returns the disease registered for a label or alias.
func (c *Catalog) Lookup(label string) (*Disease, bool) {
	d, ok := c.labels[NormalizeLabel(label)]
	return d, ok
}

// Diseases returns the catalog entries ordered by key.
func (c *Catalog) Diseases() []*Disease {
	keys := make([]string, 0, len(c.diseases))
	for k := range c.diseases {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]*Disease, len(keys))
	for i, k := range keys {
		out[i] = c.diseases[k]
	}
	return out
}

// HealthyPractices returns the care practices for a part, falling back to
// the tree-wide list for an empty or unknown part.
func (c *Catalog) HealthyPractices(part string) (string, []string) {
	p := health.NormalizePart(part)
	if practices, ok := c.healthy[p]; ok && p != "" {
		return p, practices
	}
	return TreePart, c.healthy[TreePart]
}
