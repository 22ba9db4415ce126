// Package diagfmt renders diagnostics and validation reports. It owns
// every output format the CLI speaks: the human-readable pretty
// listing, the machine JSON diagnostics dump, and the ingest report
// payload consumed by the archival pipeline.
package diagfmt

// PrettyOpts configures the human-readable diagnostic listing.
type PrettyOpts struct {
	// Color enables ANSI-colored severities.
	Color bool
	// Context prints the offending source line with a caret underline
	// when non-zero. Only meaningful for textual input.
	Context int
}
