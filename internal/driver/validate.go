// Package driver orchestrates validation runs: it loads candidate
// files, dispatches them by detected format to the matching validator,
// folds accumulator state into an Outcome, and owns batch/cache
// plumbing around the single-file core.
package driver

import (
	"errors"
	"fmt"
	"io"

	"stlgate/internal/diag"
	"stlgate/internal/source"
	"stlgate/internal/stl"
)

// Options configures a validation run.
type Options struct {
	// Tolerant demotes soft violations (negative vertices, winding
	// order, endsolid name mismatch) to warnings.
	Tolerant bool
	// Verbose renders individual warning lines to WarnWriter.
	Verbose bool
	// WarnWriter receives rendered warnings when Verbose is set.
	WarnWriter io.Writer
	// MaxDiagnostics bounds the per-run diagnostic bag (0 = default).
	MaxDiagnostics int
	// Cache, when non-nil, short-circuits runs whose content and
	// severity policy were seen before.
	Cache *ResultCache
}

// Outcome is the final verdict of one validation run. It is the unit
// stored in the result cache, so its shape is msgpack-tagged and
// guarded by the cache schema version.
type Outcome struct {
	Pass       bool   `msgpack:"pass"`
	Errors     int    `msgpack:"errors"`
	Warnings   int    `msgpack:"warnings"`
	FirstError string `msgpack:"first_error"`
	Format     string `msgpack:"format"` // "ASCII" | "binary"
}

// Result carries one run's outcome plus everything a formatter needs
// to render diagnostics with positions.
type Result struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Format  stl.Format
	Bag     *diag.Bag
	Outcome Outcome
	// Cached is set when the outcome came from the result cache and no
	// validator ran.
	Cached bool
}

// Validate runs the full pipeline for one file: load, detect, validate,
// fold. Validation verdicts (pass or fail) live in the Result; the
// returned error is reserved for I/O and other environmental failures.
func Validate(path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return validateFile(fs, fileID, opts)
}

func validateFile(fs *source.FileSet, fileID source.FileID, opts Options) (*Result, error) {
	file := fs.Get(fileID)
	format := stl.Detect(file.Content)

	if opts.Cache != nil {
		key := ResultKey(file.Hash, !opts.Tolerant)
		var cached Outcome
		hit, err := opts.Cache.Get(key, &cached)
		if err != nil {
			return nil, fmt.Errorf("result cache read: %w", err)
		}
		if hit {
			return &Result{
				Path:    file.Path,
				FileSet: fs,
				FileID:  fileID,
				Format:  format,
				Bag:     diag.NewBag(1),
				Outcome: cached,
				Cached:  true,
			}, nil
		}
	}

	sink := diag.NewCollector(file, diag.CollectorOptions{
		Binary:         format == stl.FormatBinary,
		Strict:         !opts.Tolerant,
		Verbose:        opts.Verbose,
		WarnWriter:     opts.WarnWriter,
		MaxDiagnostics: opts.MaxDiagnostics,
	})

	var vErr error
	switch format {
	case stl.FormatBinary:
		vErr = stl.ValidateBinary(file, sink)
	default:
		vErr = stl.ValidateASCII(file, sink)
	}

	outcome := Outcome{
		Errors:   sink.Errors(),
		Warnings: sink.Warnings(),
		Format:   format.String(),
	}
	if vErr != nil {
		var abort *diag.Abort
		if !errors.As(vErr, &abort) {
			// Validators only ever fail through the accumulator.
			return nil, vErr
		}
		outcome.FirstError = sink.FirstError()
	} else {
		outcome.Pass = true
	}

	if opts.Cache != nil {
		key := ResultKey(file.Hash, !opts.Tolerant)
		if err := opts.Cache.Put(key, &outcome); err != nil {
			return nil, fmt.Errorf("result cache write: %w", err)
		}
	}

	sink.Bag().Sort()
	return &Result{
		Path:    file.Path,
		FileSet: fs,
		FileID:  fileID,
		Format:  format,
		Bag:     sink.Bag(),
		Outcome: outcome,
	}, nil
}
