package walker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrNotDirectory is returned when the root of a walk is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrFilesFailed summarises a batch in which at least one file failed.
var ErrFilesFailed = errors.New("files failed")

// Op processes one file and returns the number of bytes it produced.
type Op func(path string) (int64, error)

// Outcome is the result of processing one file.
type Outcome struct {
	Path string
	Size int64
	Err  error
}

// Options tunes the processing of a batch.
type Options struct {
	// Parallel is the number of files processed at once. Values below 2 process sequentially.
	Parallel int
	// OnResult, if set, is called after every file. Calls are serialized.
	OnResult func(Outcome)
}

// Report summarises a batch.
type Report struct {
	Succeeded []Outcome
	Failed    []Outcome
	Skipped   []string
	Scanned   int
	Excluded  int
	// Remaining counts the files not started because the context was cancelled.
	Remaining int
	Bytes     int64
}

// Err returns nil if every file succeeded, and otherwise an error naming the failures.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %d of %d", ErrFilesFailed, len(r.Failed), len(r.Failed)+len(r.Succeeded))
}

// Walk applies op to the files of a listing and merges what Collect skipped or
// could not read into the report, so a run can be confirmed between the two steps.
func Walk(ctx context.Context, listing Listing, op Op, opts Options) Report {
	report := Process(ctx, listing.Files, op, opts)

	report.Skipped = listing.Skipped
	report.Scanned = listing.Scanned
	report.Excluded = listing.Excluded
	report.Failed = append(listing.Failed, report.Failed...)

	return report
}

// Process applies op to every file, isolating failures.
// Once ctx is cancelled no new file is started; files in flight complete.
func Process(ctx context.Context, files []Candidate, op Op, opts Options) Report {
	var (
		report Report
		mu     sync.Mutex
	)

	record := func(outcome Outcome) {
		mu.Lock()
		defer mu.Unlock()

		if outcome.Err != nil {
			report.Failed = append(report.Failed, outcome)
		} else {
			report.Succeeded = append(report.Succeeded, outcome)
			report.Bytes += outcome.Size
		}

		if opts.OnResult != nil {
			opts.OnResult(outcome)
		}
	}

	run := func(path string) {
		size, err := op(path)
		record(Outcome{Path: path, Size: size, Err: err})
	}

	if opts.Parallel < 2 {
		for i, file := range files {
			if ctx.Err() != nil {
				report.Remaining = len(files) - i

				break
			}

			run(file.Path)
		}

		return report
	}

	var g errgroup.Group

	g.SetLimit(opts.Parallel)

	started := 0

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}

		started++

		g.Go(func() error {
			run(file.Path)

			return nil
		})
	}

	g.Wait() //nolint:errcheck // workers record their errors in the report

	report.Remaining = len(files) - started

	return report
}
