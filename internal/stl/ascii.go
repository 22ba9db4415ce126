package stl

import (
	"strings"

	"stlgate/internal/diag"
	"stlgate/internal/geom"
	"stlgate/internal/source"
)

// line is one non-blank grammar line: normalized text plus the raw
// byte range it came from, so diagnostics can point at the original.
type line struct {
	text string
	span source.Span
}

type asciiValidator struct {
	file  *source.File
	sink  *diag.Collector
	lines []line
	pos   int
}

// ValidateASCII walks the normalized line sequence of file against the
// STL ASCII grammar. The returned error is either nil (pass, possibly
// with warnings) or the run's terminal *diag.Abort.
func ValidateASCII(file *source.File, sink *diag.Collector) error {
	v := &asciiValidator{file: file, sink: sink}
	v.collectLines()
	return v.run()
}

// collectLines splits the raw content on '\n', normalizes whitespace,
// and keeps the non-blank lines. Every skipped blank line is a counted
// warning; the empty fragment after the file's final newline is not a
// line and is skipped silently.
func (v *asciiValidator) collectLines() {
	content := v.file.Content
	start := 0
	for start <= len(content) {
		end := start
		for end < len(content) && content[end] != '\n' {
			end++
		}
		last := end == len(content)
		span := source.Span{File: v.file.ID, Start: u32(start), End: u32(end)}
		text := normalizeLine(string(content[start:end]))
		switch {
		case text != "":
			v.lines = append(v.lines, line{text: text, span: span})
		case last && start == end:
			// trailing newline artifact, not a content line
		default:
			v.sink.Warn(diag.TxtEmptyLine, span, "line is empty", "")
		}
		if last {
			break
		}
		start = end + 1
	}
}

// next yields the current line and advances the cursor. Running off
// the end is a hard error: the grammar always knows which line it
// wants next, so exhaustion means the file was truncated.
func (v *asciiValidator) next() (line, error) {
	if v.pos >= len(v.lines) {
		end := u32(len(v.file.Content))
		span := source.Span{File: v.file.ID, Start: end, End: end}
		return line{}, v.sink.Fail(diag.TxtUnexpectedEOF, span, "unexpected end of input", "")
	}
	ln := v.lines[v.pos]
	v.pos++
	return ln, nil
}

func (v *asciiValidator) run() error {
	name, err := v.header()
	if err != nil {
		return err
	}

	// Every facet occupies exactly 7 grammar lines; one header and one
	// footer line bracket them. The division truncates, so structural
	// drift surfaces as a keyword mismatch or as unexpected end of
	// input rather than a count check.
	facets := (len(v.lines) - 2) / 7
	for i := 0; i < facets; i++ {
		if err := v.facet(); err != nil {
			return err
		}
	}

	return v.footer(name)
}

// header consumes the `solid <name>` line. A missing name is a
// warning, not an error; the grammar deliberately tolerates anonymous
// solids because many exporters write them.
func (v *asciiValidator) header() (string, error) {
	ln, err := v.next()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(ln.text, "solid") {
		return "", v.sink.Fail(diag.TxtExpectedSolid, ln.span, "solid", ln.text)
	}
	rest, found := strings.CutPrefix(ln.text, "solid ")
	if !found || rest == "" {
		v.sink.Warn(diag.TxtMissingSolidName, ln.span, "solid <string>", ln.text)
		return "", nil
	}
	return strings.TrimLeft(rest, " "), nil
}

func (v *asciiValidator) facet() error {
	facetLn, err := v.next()
	if err != nil {
		return err
	}
	normal, ok := parseTriple(facetLn.text, "facet normal")
	if !ok {
		return v.sink.Fail(diag.TxtExpectedFacetNormal, facetLn.span,
			"facet normal <float> <float> <float>", facetLn.text)
	}

	ln, err := v.next()
	if err != nil {
		return err
	}
	if ln.text != "outer loop" {
		return v.sink.Fail(diag.TxtExpectedOuterLoop, ln.span, "outer loop", ln.text)
	}

	var verts [3]geom.Vec3
	for i := range verts {
		ln, err = v.next()
		if err != nil {
			return err
		}
		// Signed coordinates are accepted by the grammar (a deliberate
		// relaxation of the unsigned-vertex rule); a negative value is
		// only a soft violation.
		vtx, ok := parseTriple(ln.text, "vertex")
		if !ok {
			return v.sink.Fail(diag.TxtExpectedVertex, ln.span,
				"vertex <unsigned float> <unsigned float> <unsigned float>", ln.text)
		}
		if vtx.X < 0 || vtx.Y < 0 || vtx.Z < 0 {
			if err := v.sink.Soft(diag.GeoNegativeVertex, ln.span,
				"not all vertices have positive values", ""); err != nil {
				return err
			}
		}
		verts[i] = vtx
	}

	if !geom.CounterClockwise(verts[0], verts[1], verts[2], normal) {
		if err := v.sink.Soft(diag.GeoWindingOrder, facetLn.span,
			"vertices of facet are not ordered counterclockwise", ""); err != nil {
			return err
		}
	}

	ln, err = v.next()
	if err != nil {
		return err
	}
	if ln.text != "endloop" {
		return v.sink.Fail(diag.TxtExpectedEndloop, ln.span, "endloop", ln.text)
	}

	ln, err = v.next()
	if err != nil {
		return err
	}
	if ln.text != "endfacet" {
		return v.sink.Fail(diag.TxtExpectedEndfacet, ln.span, "endfacet", ln.text)
	}
	return nil
}

// footer consumes the `endsolid` line. When the header carried a name
// the footer must echo it exactly; the mismatch is a soft violation.
func (v *asciiValidator) footer(name string) error {
	ln, err := v.next()
	if err != nil {
		return err
	}
	if !strings.HasPrefix(ln.text, "endsolid") {
		return v.sink.Fail(diag.TxtExpectedEndsolid, ln.span, "endsolid", ln.text)
	}
	if name != "" && ln.text != "endsolid "+name {
		if err := v.sink.Soft(diag.GeoEndsolidNameMismatch, ln.span,
			"endsolid "+name, ln.text); err != nil {
			return err
		}
	}
	return nil
}
