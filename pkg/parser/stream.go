package parser

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/cushare/cushare/pkg/models"
)

// ErrTooManyParseErrors is returned when a single file accumulates more than
// MaxParseErrors malformed lines. It is a circuit breaker against corrupt
// files: the remaining lines of that file are abandoned, other files are
// unaffected.
var ErrTooManyParseErrors = errors.New("too many parsing errors in log file")

// MaxParseErrors is the per-file error budget before the stream aborts.
const MaxParseErrors = 100

// Options filter a stream's events. Since/Until bound an inclusive window;
// Project is a case-insensitive substring filter on the event's project key.
type Options struct {
	Since   time.Time
	Until   time.Time
	Project string
}

// Stream reads one JSONL file line by line, normalizing and filtering as it
// goes. Usage follows the bufio.Scanner idiom:
//
//	st, err := Open(path, opts)
//	for st.Scan() {
//	    ev := st.Event()
//	    ...
//	}
//	err = st.Err()
//
// Lines are pulled lazily in a single pass; Scan blocks on file I/O.
type Stream struct {
	file    *os.File
	scanner *bufio.Scanner
	opts    Options
	stats   models.StreamStats
	event   models.NormalizedEvent
	err     error
	lastErr error
	done    bool
}

// Open starts a stream over path.
func Open(path string, opts Options) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	sc := bufio.NewScanner(f)
	// Transcript lines can be large; raise the limit well past the default.
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 1024*1024)

	return &Stream{file: f, scanner: sc, opts: opts}, nil
}

// Scan advances to the next valid event, returning false at end of file or on
// a fatal error. Skipped and malformed lines are counted, not surfaced.
func (s *Stream) Scan() bool {
	if s.done {
		return false
	}
	for s.scanner.Scan() {
		s.stats.TotalLines++
		line := s.scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			s.stats.SkippedLines++
			continue
		}

		if !gjson.ValidBytes(line) || !gjson.ParseBytes(line).IsObject() {
			s.lastErr = fmt.Errorf("line %d: invalid JSON object", s.stats.TotalLines)
			if s.recordError() {
				return false
			}
			continue
		}

		ev := Normalize(line)
		if ev == nil {
			s.stats.SkippedLines++
			continue
		}
		if !s.withinWindow(ev.Timestamp) || !s.matchesProject(ev.Project) {
			s.stats.SkippedLines++
			continue
		}

		s.stats.ValidEvents++
		s.event = *ev
		return true
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		s.err = fmt.Errorf("read log file: %w", err)
	}
	return false
}

// recordError counts a parse error and trips the circuit breaker once the
// budget is exhausted. Returns true when the stream must stop.
func (s *Stream) recordError() bool {
	s.stats.Errors++
	if s.stats.Errors > MaxParseErrors {
		s.done = true
		s.err = fmt.Errorf("%w (%d errors, last: %v)", ErrTooManyParseErrors, s.stats.Errors, s.lastErr)
		return true
	}
	return false
}

func (s *Stream) withinWindow(ts time.Time) bool {
	if !s.opts.Since.IsZero() && ts.Before(s.opts.Since) {
		return false
	}
	if !s.opts.Until.IsZero() && ts.After(s.opts.Until) {
		return false
	}
	return true
}

func (s *Stream) matchesProject(project string) bool {
	if s.opts.Project == "" {
		return true
	}
	if project == "" {
		return false
	}
	return strings.Contains(strings.ToLower(project), strings.ToLower(s.opts.Project))
}

// Event returns the event produced by the last successful Scan.
func (s *Stream) Event() models.NormalizedEvent { return s.event }

// Stats returns the line accounting so far.
func (s *Stream) Stats() models.StreamStats { return s.stats }

// Err returns the fatal error that stopped the stream, if any.
func (s *Stream) Err() error { return s.err }

// Close releases the underlying file.
func (s *Stream) Close() error { return s.file.Close() }

// ReadFile collects every valid event of one file. It closes the stream and
// returns both the events read and the stats, even alongside a fatal error:
// events read before a circuit break are still usable.
func ReadFile(path string, opts Options) ([]models.NormalizedEvent, models.StreamStats, error) {
	st, err := Open(path, opts)
	if err != nil {
		return nil, models.StreamStats{}, err
	}
	defer st.Close()

	var events []models.NormalizedEvent
	for st.Scan() {
		events = append(events, st.Event())
	}
	return events, st.Stats(), st.Err()
}
