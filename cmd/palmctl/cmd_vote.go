package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/palmwatch/internal/health"
)

func newVoteCmd() *cobra.Command {
	var file, output string

	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Vote over recorded part observations",
		Long: "An array of observations is reduced to a single majority vote.\n" +
			"An object keyed by part yields a full tree assessment.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			result, err := vote(data)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Observations JSON file (- for stdin)")
	addOutputFlag(cmd, &output)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func vote(data []byte) (any, error) {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var observations []health.Observation
		if err := json.Unmarshal(data, &observations); err != nil {
			return nil, fmt.Errorf("decode observations: %w", err)
		}
		return health.RobustVote(observations), nil
	}

	var byPart map[string][]health.Observation
	if err := json.Unmarshal(data, &byPart); err != nil {
		return nil, fmt.Errorf("decode observations: %w", err)
	}
	return health.AssessTree(byPart), nil
}
