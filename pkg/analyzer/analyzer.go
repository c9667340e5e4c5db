// Package analyzer wires discovery, parsing, and aggregation into the
// end-to-end runs the CLI exposes.
package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/cushare/cushare/pkg/aggregator"
	"github.com/cushare/cushare/pkg/discovery"
	"github.com/cushare/cushare/pkg/models"
	"github.com/cushare/cushare/pkg/parser"
	"github.com/cushare/cushare/pkg/session"
)

var (
	// ErrNoLogFiles means discovery found nothing to read.
	ErrNoLogFiles = errors.New("no log files found")

	// ErrNoValidEvents means every line of every file was skipped or failed.
	ErrNoValidEvents = errors.New("no valid events found in log files")
)

// FileError records a file that could not be fully read. The run continues
// past these; the cmd layer prints them as warnings.
type FileError struct {
	Path string
	Err  error
}

func (fe FileError) Error() string {
	return fmt.Sprintf("%s: %v", fe.Path, fe.Err)
}

// RunStats accumulates line accounting across every file of a run.
type RunStats struct {
	Files      int
	FileErrors []FileError
	models.StreamStats
}

// Run discovers log files, streams and filters their events, and aggregates
// them per opts. Per-file failures are collected in RunStats, not fatal.
func Run(paths []string, popts parser.Options, aopts aggregator.Options) (*aggregator.Result, *RunStats, error) {
	events, stats, err := collect(paths, popts)
	if err != nil {
		return nil, stats, err
	}

	result, err := aggregator.Aggregate(events, aopts)
	if err != nil {
		return nil, stats, err
	}
	return result, stats, nil
}

// Today runs the same ingestion and builds the live session report for the
// current day in tz. A tokenLimit of 0 auto-detects from observed blocks.
func Today(paths []string, popts parser.Options, tz string, tokenLimit int64) (*models.TodayReport, *RunStats, error) {
	events, stats, err := collect(paths, popts)
	if err != nil {
		return nil, stats, err
	}

	loc := time.Local
	if tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, stats, fmt.Errorf("load timezone %q: %w", tz, err)
		}
	}
	return session.BuildTodayReport(events, loc, tokenLimit, time.Now()), stats, nil
}

func collect(paths []string, popts parser.Options) ([]models.NormalizedEvent, *RunStats, error) {
	files := discovery.Discover(paths)
	stats := &RunStats{Files: len(files)}
	if len(files) == 0 {
		return nil, stats, ErrNoLogFiles
	}

	var events []models.NormalizedEvent
	for _, file := range files {
		evs, fs, err := parser.ReadFile(file, popts)
		stats.StreamStats.Add(fs)
		if err != nil {
			stats.FileErrors = append(stats.FileErrors, FileError{Path: file, Err: err})
		}
		// Events parsed before a file's failure still count.
		events = append(events, evs...)
	}

	if len(events) == 0 {
		return nil, stats, ErrNoValidEvents
	}
	return events, stats, nil
}
