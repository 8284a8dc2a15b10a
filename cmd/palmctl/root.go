package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "palmctl",
		Short: "Offline coconut palm health aggregation",
		Long: "palmctl aggregates per-frame classifier output into a tree dashboard,\n" +
			"votes over recorded observations and looks up treatment advice.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	root.AddCommand(newAggregateCmd())
	root.AddCommand(newVoteCmd())
	root.AddCommand(newRecommendCmd())
	root.AddCommand(newTableCmd())
	root.Version = version

	return root
}
