package main

import (
	"github.com/spf13/cobra"

	"github.com/cushare/cushare/pkg/models"
)

func newMonthlyCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Aggregate usage per calendar month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(&flags, models.GroupMonth)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.asCSV, "csv", false, "emit CSV instead of a table")
	return cmd
}
