package main

import (
	"github.com/spf13/cobra"

	"github.com/cushare/cushare/pkg/models"
)

func newAllTimeCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "all-time",
		Short: "Aggregate usage across all logged events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(&flags, models.GroupAllTime)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.asCSV, "csv", false, "emit CSV instead of a table")
	return cmd
}
