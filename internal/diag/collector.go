package diag

import (
	"fmt"
	"io"

	"stlgate/internal/source"
)

// Abort is the terminal failure a Collector returns from Fail. It ends
// the validation run; only the first one is ever produced. Modelled as
// a plain error value so validators short-circuit with an ordinary
// error check instead of an unwind mechanism.
type Abort struct {
	Diag     Diagnostic
	Rendered string // "line 4: Expected 'solid' but got 'slid'."
}

func (a *Abort) Error() string {
	return "Error on " + a.Rendered
}

// CollectorOptions configures a single validation run's accumulator.
type CollectorOptions struct {
	// Binary switches location rendering from line numbers to byte
	// offsets.
	Binary bool
	// Strict promotes soft violations to hard errors.
	Strict bool
	// Verbose renders individual warning lines to WarnWriter. Counting
	// never depends on it.
	Verbose bool
	// WarnWriter receives rendered warning lines when Verbose is set.
	WarnWriter io.Writer
	// MaxDiagnostics bounds the Bag; 0 means the default of 100.
	MaxDiagnostics int
}

// Collector is the diagnostic accumulator owned by exactly one
// validation run: warning/error counters, the first error's rendered
// message, and the strict/tolerant severity policy.
type Collector struct {
	bag        *Bag
	file       *source.File
	opts       CollectorOptions
	errors     int
	warnings   int
	firstError string
}

// NewCollector creates an accumulator for one run over file.
func NewCollector(file *source.File, opts CollectorOptions) *Collector {
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = 100
	}
	return &Collector{
		bag:  NewBag(maxDiags),
		file: file,
		opts: opts,
	}
}

// Warn records a non-fatal diagnostic. When verbose reporting is on it
// renders a human-readable line; it never ends the run.
func (c *Collector) Warn(code Code, span source.Span, expected, actual string) {
	msg := renderMessage(expected, actual)
	c.warnings++
	c.bag.Add(New(SevWarning, code, span, msg))
	if c.opts.Verbose && c.opts.WarnWriter != nil {
		fmt.Fprintf(c.opts.WarnWriter, "Warning on %s: %s\n", c.locString(span), msg)
	}
}

// Fail records a fatal diagnostic and returns the terminal *Abort.
// The first call captures the rendered first-error message; the run
// stops after exactly one error.
func (c *Collector) Fail(code Code, span source.Span, expected, actual string) error {
	msg := renderMessage(expected, actual)
	c.errors++
	d := New(SevError, code, span, msg)
	c.bag.Add(d)
	rendered := fmt.Sprintf("%s: %s", c.locString(span), msg)
	if c.firstError == "" {
		c.firstError = rendered
	}
	return &Abort{Diag: d, Rendered: rendered}
}

// Soft applies the severity policy: Fail in strict mode, Warn in
// tolerant mode. Only the three soft violation kinds go through here;
// numeric corruption is always Fail.
func (c *Collector) Soft(code Code, span source.Span, expected, actual string) error {
	if c.classify(code) == SevError {
		return c.Fail(code, span, expected, actual)
	}
	c.Warn(code, span, expected, actual)
	return nil
}

// classify maps a violation kind to its severity under the current
// policy, decoupled from the control flow that acts on it.
func (c *Collector) classify(code Code) Severity {
	if code.Soft() && !c.opts.Strict {
		return SevWarning
	}
	return SevError
}

// Errors returns the number of recorded errors (0 or 1 in practice).
func (c *Collector) Errors() int { return c.errors }

// Warnings returns the number of recorded warnings.
func (c *Collector) Warnings() int { return c.warnings }

// FirstError returns the first error's rendered message, or "".
func (c *Collector) FirstError() string { return c.firstError }

// Bag returns the accumulated diagnostics.
func (c *Collector) Bag() *Bag { return c.bag }

// Strict reports the active severity policy.
func (c *Collector) Strict() bool { return c.opts.Strict }

func (c *Collector) locString(span source.Span) string {
	if c.opts.Binary {
		return fmt.Sprintf("byte offset %d", span.Start)
	}
	return fmt.Sprintf("line %d", c.file.Line(span.Start))
}

// renderMessage builds the user-facing message: expected/got pairs
// read "Expected 'x' but got 'y'.", location-only findings carry just
// the expected-condition text.
func renderMessage(expected, actual string) string {
	if actual == "" {
		return expected
	}
	return fmt.Sprintf("Expected '%s' but got '%s'.", expected, actual)
}
