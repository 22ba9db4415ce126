package driver

import (
	"bytes"
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EventStatus tells a progress consumer what happened to one file.
type EventStatus uint8

const (
	EventStarted EventStatus = iota
	EventPassed
	EventFailed
	EventErrored // I/O failure, no verdict
)

// Event is one progress notification from a batch run.
type Event struct {
	Path   string
	Status EventStatus
}

// BatchItem is the per-file slot of a batch run: exactly one of Result
// and Err is set. Warnings holds the lines the run would have printed
// with a verbose writer, captured per file so parallel runs do not
// interleave.
type BatchItem struct {
	Path     string
	Result   *Result
	Err      error
	Warnings string
}

// ValidateAll validates paths in parallel with at most jobs workers
// (0 = GOMAXPROCS). Every file gets its own FileSet and accumulator;
// nothing is shared between runs except the optional cache, which is
// safe for concurrent use. Results keep the order of paths. events,
// when non-nil, receives progress notifications and is closed before
// the function returns.
func ValidateAll(ctx context.Context, paths []string, opts Options, jobs int, events chan<- Event) ([]BatchItem, error) {
	if events != nil {
		defer close(events)
	}
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	items := make([]BatchItem, len(paths))

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(events, Event{Path: path, Status: EventStarted})

			fileOpts := opts
			var warnBuf bytes.Buffer
			if opts.Verbose {
				fileOpts.WarnWriter = &warnBuf
			}

			res, err := Validate(path, fileOpts)
			items[i] = BatchItem{Path: path, Result: res, Err: err, Warnings: warnBuf.String()}

			switch {
			case err != nil:
				emit(events, Event{Path: path, Status: EventErrored})
			case res.Outcome.Pass:
				emit(events, Event{Path: path, Status: EventPassed})
			default:
				emit(events, Event{Path: path, Status: EventFailed})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func emit(events chan<- Event, ev Event) {
	if events != nil {
		events <- ev
	}
}
