package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"stlgate/internal/diag"
	"stlgate/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
)

// Pretty formats diagnostics in a human-readable way. It walks
// bag.Items() (call bag.Sort() beforehand) and prints for each one:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed, when opts.Context > 0, by the offending line with a
// ^~~~ underline covering the span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)

		sev := d.Severity.String()
		if opts.Color {
			switch d.Severity {
			case diag.SevError:
				sev = errColor.Sprint(sev)
			case diag.SevWarning:
				sev = warnColor.Sprint(sev)
			}
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			f.Path, start.Line, start.Col, sev, d.Code.ID(), d.Message)

		if opts.Context > 0 {
			writeContext(w, f, d.Primary, start)
		}
	}
}

// writeContext prints the line containing the span start with a caret
// underline. Spans that cover no printable text (binary offsets,
// end-of-file positions) are skipped.
func writeContext(w io.Writer, f *source.File, span source.Span, start source.LineCol) {
	text := f.GetLine(start.Line)
	if text == "" || !printable(text) {
		return
	}

	fmt.Fprintf(w, "  %s\n", text)

	width := int(span.Len())
	if width < 1 {
		width = 1
	}
	if avail := len(text) - int(start.Col) + 1; width > avail {
		width = avail
	}
	if width < 1 {
		return
	}
	fmt.Fprintf(w, "  %s^%s\n", strings.Repeat(" ", int(start.Col)-1), strings.Repeat("~", width-1))
}

func printable(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 && b != '\t' {
			return false
		}
	}
	return true
}
