package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvAnalysisMaxFrames    = "PALMWATCH_ANALYSIS_MAX_FRAMES"
	EnvAnalysisBatchWorkers = "PALMWATCH_ANALYSIS_BATCH_WORKERS"
	EnvAnalysisMaxBatchSize = "PALMWATCH_ANALYSIS_MAX_BATCH_SIZE"
)

// AnalysisConfig bounds the size of submitted frame batches and the
// concurrency used when aggregating several trees in one request.
type AnalysisConfig struct {
	MaxFrames    int `toml:"max_frames"`
	BatchWorkers int `toml:"batch_workers"`
	MaxBatchSize int `toml:"max_batch_size"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AnalysisConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AnalysisConfig) Merge(overlay *AnalysisConfig) {
	if overlay.MaxFrames != 0 {
		c.MaxFrames = overlay.MaxFrames
	}
	if overlay.BatchWorkers != 0 {
		c.BatchWorkers = overlay.BatchWorkers
	}
	if overlay.MaxBatchSize != 0 {
		c.MaxBatchSize = overlay.MaxBatchSize
	}
}

func (c *AnalysisConfig) loadDefaults() {
	if c.MaxFrames <= 0 {
		c.MaxFrames = 10000
	}
	if c.BatchWorkers <= 0 {
		c.BatchWorkers = 4
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = 100
	}
}

func (c *AnalysisConfig) loadEnv() {
	if v := os.Getenv(EnvAnalysisMaxFrames); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxFrames = n
		}
	}
	if v := os.Getenv(EnvAnalysisBatchWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchWorkers = n
		}
	}
	if v := os.Getenv(EnvAnalysisMaxBatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxBatchSize = n
		}
	}
}

func (c *AnalysisConfig) validate() error {
	if c.MaxFrames < 1 {
		return fmt.Errorf("invalid max_frames: %d", c.MaxFrames)
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("invalid batch_workers: %d", c.BatchWorkers)
	}
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("invalid max_batch_size: %d", c.MaxBatchSize)
	}
	return nil
}
