package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cushare/cushare/pkg/aggregator"
	"github.com/cushare/cushare/pkg/analyzer"
	"github.com/cushare/cushare/pkg/config"
	"github.com/cushare/cushare/pkg/models"
	"github.com/cushare/cushare/pkg/output"
	"github.com/cushare/cushare/pkg/parser"
)

// reportFlags are the options shared by every reporting subcommand.
type reportFlags struct {
	configPath string
	paths      []string
	since      string
	until      string
	tz         string
	project    string
	asJSON     bool
	asCSV      bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringArrayVar(&f.paths, "path", nil, "log file or directory (repeatable)")
	cmd.Flags().StringVar(&f.since, "since", "", "only events at or after this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.until, "until", "", "only events at or before this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.tz, "tz", "", "IANA timezone for calendar grouping (default: local)")
	cmd.Flags().StringVar(&f.project, "project", "", "only events whose project path contains this substring")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "emit JSON instead of a table")
}

// loadConfig applies flag-over-config precedence and returns the merged view.
func (f *reportFlags) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(f.paths) > 0 {
		cfg.LogPaths = f.paths
	}
	if f.tz != "" {
		cfg.Timezone = f.tz
	}
	if f.project != "" {
		cfg.Project = f.project
	}
	return cfg, nil
}

func (f *reportFlags) parserOptions(cfg *config.Config) (parser.Options, error) {
	opts := parser.Options{Project: cfg.Project}
	var err error
	if opts.Since, err = parseTimeFlag(f.since); err != nil {
		return opts, fmt.Errorf("parse --since: %w", err)
	}
	if opts.Until, err = parseTimeFlag(f.until); err != nil {
		return opts, fmt.Errorf("parse --until: %w", err)
	}
	return opts, nil
}

func parseTimeFlag(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not RFC 3339 or YYYY-MM-DD", v)
	}
	return t, nil
}

// runReport is the shared body of all-time, daily, and monthly.
func runReport(f *reportFlags, groupBy models.Grouping) error {
	cfg, err := f.loadConfig()
	if err != nil {
		return err
	}

	popts, err := f.parserOptions(cfg)
	if err != nil {
		return err
	}

	aopts := aggregator.Options{
		GroupBy:  groupBy,
		Timezone: cfg.Timezone,
		Since:    popts.Since,
		Until:    popts.Until,
	}

	result, stats, err := analyzer.Run(cfg.LogPaths, popts, aopts)
	printFileWarnings(stats)
	if err != nil {
		return err
	}

	switch {
	case f.asJSON:
		out, err := output.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case f.asCSV:
		out, err := output.FormatCSV(result)
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		fmt.Println(output.FormatTable(result))
	}
	return nil
}

func printFileWarnings(stats *analyzer.RunStats) {
	if stats == nil {
		return
	}
	for _, fe := range stats.FileErrors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", fe)
	}
}
