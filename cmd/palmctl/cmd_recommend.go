package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/internal/recommendations"
)

type recommendFlags struct {
	file       string
	label      string
	confidence float64
	part       string
	output     string
}

func newRecommendCmd() *cobra.Command {
	var flags recommendFlags

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Look up treatment advice for a label or a dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "Dashboard JSON file (- for stdin)")
	f.StringVar(&flags.label, "label", "", "Disease or healthy label")
	f.Float64Var(&flags.confidence, "confidence", 100, "Label confidence (0-100)")
	f.StringVar(&flags.part, "part", "", "Tree part the label applies to")
	addOutputFlag(cmd, &flags.output)
	cmd.MarkFlagsMutuallyExclusive("file", "label")
	cmd.MarkFlagsOneRequired("file", "label")

	return cmd
}

func runRecommend(cmd *cobra.Command, flags recommendFlags) error {
	catalog := recommendations.Default()

	if flags.label != "" {
		rec, err := catalog.Recommend(flags.label, flags.confidence, flags.part)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), flags.output, rec)
	}

	data, err := readInput(cmd, flags.file)
	if err != nil {
		return err
	}

	var dashboard health.Dashboard
	if err := json.Unmarshal(data, &dashboard); err != nil {
		return fmt.Errorf("decode dashboard: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), flags.output, catalog.FromDashboard(dashboard))
}
