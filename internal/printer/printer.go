// Package printer writes match events to the primary output
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/bethropolis/dir-grep/internal/scanner"
)

// Separator precedes every context block in text mode
const Separator = "--"

// Printer formats match events and writes them to the configured output.
// Any write error is returned to the caller and should end the run.
type Printer struct {
	output      io.Writer
	useColors   bool
	separators  bool
	jsonOutput  bool
	jsonStarted bool

	label  *color.Color
	number *color.Color
	sep    *color.Color
}

// New creates a new Printer with default settings
func New() *Printer {
	p := &Printer{
		output: os.Stdout,
		label:  color.New(color.FgMagenta),
		number: color.New(color.FgGreen),
		sep:    color.New(color.FgCyan),
	}
	return p.WithColors(false)
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	for _, c := range []*color.Color{p.label, p.number, p.sep} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WithContext turns on the context block. When enabled every match is
// preceded by a separator line and its context lines, even when the
// context is empty.
func (p *Printer) WithContext(enabled bool) *Printer {
	p.separators = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// Emit writes one match event. It implements scanner.Sink.
func (p *Printer) Emit(ev scanner.Event) error {
	if p.jsonOutput {
		return p.emitJSON(ev)
	}

	if p.separators {
		if _, err := fmt.Fprintln(p.output, p.sep.Sprint(Separator)); err != nil {
			return fmt.Errorf("printer: %w", err)
		}
		for _, l := range ev.Context {
			if err := p.writeLine(ev.Source, l.Number, l.Text); err != nil {
				return err
			}
		}
	}
	return p.writeLine(ev.Source, ev.Line, ev.Text)
}

// writeLine writes "<source> +<number> |<text>"
func (p *Printer) writeLine(source string, number uint64, text string) error {
	_, err := fmt.Fprintf(p.output, "%s +%s |%s\n", p.label.Sprint(source), p.number.Sprint(number), text)
	if err != nil {
		return fmt.Errorf("printer: %w", err)
	}
	return nil
}

func (p *Printer) emitJSON(ev scanner.Event) error {
	jsonData, err := json.MarshalIndent(ev, "  ", "  ")
	if err != nil {
		return fmt.Errorf("printer: encoding match: %w", err)
	}

	lead := ",\n"
	if !p.jsonStarted {
		lead = "[\n"
		p.jsonStarted = true
	}
	if _, err := fmt.Fprintf(p.output, "%s  %s", lead, jsonData); err != nil {
		return fmt.Errorf("printer: %w", err)
	}
	return nil
}

// Finalize completes any pending output. In JSON mode it closes the array,
// writing an empty one when nothing matched.
func (p *Printer) Finalize() error {
	if !p.jsonOutput {
		return nil
	}
	closing := "\n]\n"
	if !p.jsonStarted {
		closing = "[]\n"
	}
	if _, err := fmt.Fprint(p.output, closing); err != nil {
		return fmt.Errorf("printer: %w", err)
	}
	return nil
}
