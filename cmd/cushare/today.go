package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cushare/cushare/pkg/analyzer"
	"github.com/cushare/cushare/pkg/output"
)

func newTodayCmd() *cobra.Command {
	var (
		flags      reportFlags
		tokenLimit int64
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Today's usage with live 5-hour session tracking",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if tokenLimit > 0 {
				cfg.TokenLimit = tokenLimit
			}

			popts, err := flags.parserOptions(cfg)
			if err != nil {
				return err
			}

			report, stats, err := analyzer.Today(cfg.LogPaths, popts, cfg.Timezone, cfg.TokenLimit)
			printFileWarnings(stats)
			if err != nil {
				return err
			}

			if flags.asJSON {
				out, err := output.FormatTodayJSON(report)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			fmt.Println(output.FormatToday(report))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Int64VarP(&tokenLimit, "token-limit", "t", 0, "session token limit (default: auto-detect)")
	return cmd
}
