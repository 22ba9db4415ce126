package diagfmt

import (
	"encoding/json"
	"io"

	"stlgate/internal/diag"
	"stlgate/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet) LocationJSON {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	return LocationJSON{
		File:      f.Path,
		StartByte: span.Start,
		EndByte:   span.End,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}

// Build assembles the JSON form of the accumulated diagnostics.
// Call bag.Sort() beforehand for deterministic output.
func Build(bag *diag.Bag, fs *source.FileSet) (DiagnosticsOutput, error) {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, bag.Len()),
		Count:       bag.Len(),
	}
	for _, d := range bag.Items() {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs),
		})
	}
	return out, nil
}

// JSON writes the accumulated diagnostics as a single JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	out, err := Build(bag, fs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
