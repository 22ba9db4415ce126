// Package diag defines the diagnostic model shared by the STL
// validators.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the format detector and the ASCII/binary
//     validators.
//   - Offer light-weight utilities (Bag, Collector) that let validators
//     emit diagnostics without coupling to concrete storage or
//     formatting layers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – two-level enum (Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable
//     string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//
// # Emitting diagnostics
//
// Validators own exactly one Collector per run. The Collector applies
// the severity policy (strict vs. tolerant), counts warnings and
// errors, captures the first error's rendered message, and signals
// termination through a returned *Abort value rather than a panic, so
// validation loops short-circuit with an ordinary error check.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics and the final report.
//   - internal/driver: folds Collector state into the run Outcome.
//
// Keep the data model deterministic: the CLI serialises diagnostics
// for caching and testing.
package diag
