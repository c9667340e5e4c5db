package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "cushare",
		Short:   "Usage reports from Claude Code logs",
		Version: version,
	}

	root.AddCommand(
		newAllTimeCmd(),
		newDailyCmd(),
		newMonthlyCmd(),
		newTodayCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
