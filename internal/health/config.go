package health

import (
	"fmt"
	"os"
	"strconv"
)

// Default tunables.
const (
	DefaultMinReliability         = 70
	DefaultTreeThreshold          = 70
	DefaultLowConfidenceThreshold = 50
)

// Config holds the tunable thresholds used by the aggregation pipeline.
// All values are on the 0-100 scale. Zero values are replaced by defaults
// during Finalize; an environment override of 0 is applied afterwards and kept.
type Config struct {
	MinReliability         float64 `toml:"min_reliability" yaml:"min_reliability"`
	TreeThreshold          float64 `toml:"tree_threshold" yaml:"tree_threshold"`
	LowConfidenceThreshold float64 `toml:"low_confidence_threshold" yaml:"low_confidence_threshold"`

	finalized bool
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	MinReliability         string
	TreeThreshold          string
	LowConfidenceThreshold string
}

// DefaultConfig returns a finalized Config holding the default thresholds.
func DefaultConfig() Config {
	var c Config
	c.loadDefaults()
	c.finalized = true
	return c
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if err := c.validate(); err != nil {
		return err
	}
	c.finalized = true
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.MinReliability != 0 {
		c.MinReliability = overlay.MinReliability
	}
	if overlay.TreeThreshold != 0 {
		c.TreeThreshold = overlay.TreeThreshold
	}
	if overlay.LowConfidenceThreshold != 0 {
		c.LowConfidenceThreshold = overlay.LowConfidenceThreshold
	}
}

func (c *Config) loadDefaults() {
	if c.MinReliability == 0 {
		c.MinReliability = DefaultMinReliability
	}
	if c.TreeThreshold == 0 {
		c.TreeThreshold = DefaultTreeThreshold
	}
	if c.LowConfidenceThreshold == 0 {
		c.LowConfidenceThreshold = DefaultLowConfidenceThreshold
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MinReliability != "" {
		if v := os.Getenv(env.MinReliability); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.MinReliability = f
			}
		}
	}
	if env.TreeThreshold != "" {
		if v := os.Getenv(env.TreeThreshold); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.TreeThreshold = f
			}
		}
	}
	if env.LowConfidenceThreshold != "" {
		if v := os.Getenv(env.LowConfidenceThreshold); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.LowConfidenceThreshold = f
			}
		}
	}
}

func (c *Config) validate() error {
	if c.MinReliability < 0 || c.MinReliability > 100 {
		return fmt.Errorf("invalid min_reliability: %v", c.MinReliability)
	}
	if c.TreeThreshold < 0 || c.TreeThreshold > 100 {
		return fmt.Errorf("invalid tree_threshold: %v", c.TreeThreshold)
	}
	if c.LowConfidenceThreshold < 0 || c.LowConfidenceThreshold > 100 {
		return fmt.Errorf("invalid low_confidence_threshold: %v", c.LowConfidenceThreshold)
	}
	return nil
}
