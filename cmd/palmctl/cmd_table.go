package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/palmwatch/internal/health"
)

func newTableCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the part/disease compatibility table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := health.DefaultTable()
			if output != "" && output != "text" {
				return writeOutput(cmd.OutOrStdout(), output, table.Entries())
			}

			out := cmd.OutOrStdout()
			for _, part := range table.Parts() {
				fmt.Fprintf(out, "%-8s %s\n", part, strings.Join(table.Statuses(part), ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")

	return cmd
}
