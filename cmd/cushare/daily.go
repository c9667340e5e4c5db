package main

import (
	"github.com/spf13/cobra"

	"github.com/cushare/cushare/pkg/models"
)

func newDailyCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Aggregate usage per calendar day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(&flags, models.GroupDay)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.asCSV, "csv", false, "emit CSV instead of a table")
	return cmd
}
