package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/palmwatch/internal/health"
)

type aggregateFlags struct {
	file          string
	config        string
	output        string
	minRel        float64
	treeThreshold float64
	lowConfidence float64
}

func newAggregateCmd() *cobra.Command {
	var flags aggregateFlags

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate classifier frames into a tree dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAggregate(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "Frames JSON file (- for stdin)")
	f.StringVar(&flags.config, "config", "", "TOML file with a [health] table")
	f.Float64Var(&flags.minRel, "min-reliability", 0, "Minimum frame reliability (0-100)")
	f.Float64Var(&flags.treeThreshold, "tree-threshold", 0, "Weighted score separating healthy trees (0-100)")
	f.Float64Var(&flags.lowConfidence, "low-confidence", 0, "Part confidence below which a verdict is flagged (0-100)")
	addOutputFlag(cmd, &flags.output)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runAggregate(cmd *cobra.Command, flags aggregateFlags) error {
	cfg, err := loadHealthConfig(flags.config)
	if err != nil {
		return err
	}

	cfg.Merge(&health.Config{
		MinReliability:         flags.minRel,
		TreeThreshold:          flags.treeThreshold,
		LowConfidenceThreshold: flags.lowConfidence,
	})
	if err := cfg.Finalize(nil); err != nil {
		return err
	}

	data, err := readInput(cmd, flags.file)
	if err != nil {
		return err
	}

	frames, err := decodeFrames(data)
	if err != nil {
		return err
	}

	dashboard := health.New(cfg, nil).AggregateRaw(frames)
	return writeOutput(cmd.OutOrStdout(), flags.output, dashboard)
}

type healthFile struct {
	Health health.Config `toml:"health"`
}

func loadHealthConfig(path string) (health.Config, error) {
	if path == "" {
		return health.Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return health.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var file healthFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return health.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return file.Health, nil
}

// decodeFrames accepts a bare array of frames or an object holding them
// under "frames".
func decodeFrames(data []byte) ([]health.RawFrame, error) {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Frames []health.RawFrame `json:"frames"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode frames: %w", err)
		}
		return wrapped.Frames, nil
	}

	var frames []health.RawFrame
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("decode frames: %w", err)
	}
	return frames, nil
}
