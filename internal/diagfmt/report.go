package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"stlgate/internal/driver"
)

// Report is the ingest-gate payload: one JSON object per validated
// file, emitted to stdout on pass and stderr on fail. Field names
// follow the PREMIS event vocabulary of the consuming pipeline.
type Report struct {
	EventOutcomeInformation string  `json:"eventOutcomeInformation"`
	EventOutcomeDetailNote  string  `json:"eventOutcomeDetailNote"`
	Stdout                  *string `json:"stdout"`
}

// BuildReport folds a validation outcome into the report payload.
func BuildReport(path string, outcome driver.Outcome) Report {
	if outcome.Pass {
		note := detailNote(
			"STL (Standard Tessellation Language)",
			outcome.Format,
			fmt.Sprintf("errors: %d; warnings: %d", outcome.Errors, outcome.Warnings),
		)
		line := path + " validates."
		return Report{
			EventOutcomeInformation: "pass",
			EventOutcomeDetailNote:  note,
			Stdout:                  &line,
		}
	}
	return Report{
		EventOutcomeInformation: "fail",
		EventOutcomeDetailNote: fmt.Sprintf(
			"STL file validation failed, errors: %d, warnings: %d, first error on %s",
			outcome.Errors, outcome.Warnings, outcome.FirstError),
		Stdout: nil,
	}
}

// detailNote renders the semicolon-separated detail fields; version
// and result are omitted when empty.
func detailNote(format, version, result string) string {
	note := fmt.Sprintf("format=%q;", format)
	if version != "" {
		note += fmt.Sprintf(" version=%q;", version)
	}
	if result != "" {
		note += fmt.Sprintf(" result=%q", result)
	}
	return note
}

// WriteReport emits the payload as a single JSON line.
func WriteReport(w io.Writer, r Report) error {
	return json.NewEncoder(w).Encode(r)
}
