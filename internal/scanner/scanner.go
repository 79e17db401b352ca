// Package scanner reads an input stream line by line and reports the lines
// selected by the search criteria, together with their preceding context.
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/dir-grep/internal/pattern"
	"github.com/bethropolis/dir-grep/internal/ringbuf"
)

// StdinLabel is the source label used for standard input.
const StdinLabel = "(standard input)"

// ErrNoInclude is returned when criteria are built without an include pattern.
var ErrNoInclude = errors.New("scanner: a content include pattern is required")

// Criteria selects lines. It is immutable once built and may be shared by
// every scan of a run.
type Criteria struct {
	include pattern.Matcher
	exclude pattern.Matcher
	context int
}

// NewCriteria builds Criteria. include is required; exclude may be nil.
func NewCriteria(include, exclude pattern.Matcher, context int) (Criteria, error) {
	if include == nil {
		return Criteria{}, ErrNoInclude
	}
	if context < 0 {
		return Criteria{}, fmt.Errorf("scanner: context depth must not be negative, got %d", context)
	}
	return Criteria{include: include, exclude: exclude, context: context}, nil
}

// Context is the number of preceding lines reported with each match.
func (c Criteria) Context() int { return c.context }

// IsMatch reports whether line is selected: it must match the include
// pattern and, if an exclude pattern is set, must not match it. The exclude
// pattern is never consulted for lines the include pattern rejects.
func (c Criteria) IsMatch(line string) bool {
	if c.include == nil || !c.include.MatchString(line) {
		return false
	}
	return c.exclude == nil || !c.exclude.MatchString(line)
}

// Event is one matched line plus the context lines that precede it.
type Event struct {
	Source  string         `json:"source"`
	Line    uint64         `json:"line"`
	Text    string         `json:"text"`
	Context []ringbuf.Line `json:"context,omitempty"`
}

// Sink receives match events. An error from Emit aborts the scan and is
// returned unchanged by Scan.
type Sink interface {
	Emit(ev Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event) error

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) error { return f(ev) }

// ReadError reports a failure reading the source. It is recoverable: the
// rest of that source is abandoned but other sources can still be scanned.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("Error reading %s, %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Stats counts what a scan saw.
type Stats struct {
	Lines   uint64 // lines read, including undecodable ones
	Matches uint64
	Invalid uint64 // lines skipped because they are not valid UTF-8
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Lines += o.Lines
	s.Matches += o.Matches
	s.Invalid += o.Invalid
}

// Scan reads r to the end and emits an Event for every matching line.
//
// Lines are split on '\n'; a trailing '\r' is dropped and a final
// unterminated line is still processed. Numbering starts at 0 and advances
// on every line. Lines that are not valid UTF-8 are counted and skipped.
// Each call uses a fresh context buffer.
func Scan(r io.Reader, source string, c Criteria, sink Sink) (Stats, error) {
	var st Stats
	buf := ringbuf.New(c.context)
	br := bufio.NewReader(r)

	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			number := st.Lines
			st.Lines++
			line := trimEOL(raw)

			if !utf8.ValidString(line) {
				st.Invalid++
			} else {
				buf.Push(number, line)
				if c.IsMatch(line) {
					st.Matches++
					ev := Event{Source: source, Line: number, Text: line}
					if c.context > 0 {
						ev.Context = buf.Snapshot()
					}
					if serr := sink.Emit(ev); serr != nil {
						return st, serr
					}
				}
			}
		}
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return st, &ReadError{Source: source, Err: err}
		}
	}
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
