// Package logic wires key material, the cipher engine, the safety gate and the walker
// into the encrypt and decrypt runs.
package logic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/idelchi/encryptf/internal/config"
	"github.com/idelchi/encryptf/internal/encryption"
	"github.com/idelchi/encryptf/internal/fileutil"
	"github.com/idelchi/encryptf/internal/filter"
	"github.com/idelchi/encryptf/internal/keys"
	"github.com/idelchi/encryptf/internal/safety"
	"github.com/idelchi/encryptf/internal/walker"
)

// ErrAborted is returned when the user declines the confirmation prompt.
var ErrAborted = errors.New("aborted by user")

// Runner executes encrypt and decrypt runs.
type Runner struct {
	Fs   afero.Fs
	Gate *safety.Gate
	Log  *zap.SugaredLogger
	// Out receives the dry-run listing and the stats summary.
	Out io.Writer
	// Confirm is asked before a directory run unless --yes or --dry is given.
	// A nil Confirm proceeds without asking.
	Confirm func(dir string, files int) (bool, error)
}

// NewRunner returns a runner on the OS filesystem.
func NewRunner(log *zap.SugaredLogger, protect ...string) *Runner {
	return &Runner{
		Fs:   afero.NewOsFs(),
		Gate: safety.New(protect...),
		Log:  log,
		Out:  os.Stderr,
	}
}

// Run encrypts or decrypts the configured file or directory.
// Pre-flight failures (unsafe directory, missing target, key problems) return before any
// file is touched. Per-file failures are logged and summarised in the returned error.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	log := r.Log.With("run", uuid.NewString(), "action", action(cfg))

	listing, err := r.preflight(cfg)
	if err != nil {
		return err
	}

	engine, err := r.engine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	if cfg.Dry {
		r.dryRun(listing, cfg, start)

		return nil
	}

	if cfg.Directory != "" && !cfg.Yes && r.Confirm != nil {
		ok, err := r.Confirm(cfg.Directory, len(listing.Files))
		if err != nil {
			return fmt.Errorf("confirming: %w", err)
		}

		if !ok {
			return ErrAborted
		}
	}

	log.Infow("starting", "target", cfg.Target(), "mode", engine.Mode().String(), "files", len(listing.Files))

	transform := fileutil.Transform(engine.Transform(cfg.Decrypt))
	opts := fileutil.Options{PreserveTimestamps: cfg.PreserveTimestamps}

	op := func(path string) (int64, error) {
		res, err := fileutil.Rewrite(r.Fs, path, transform, opts)

		return res.OutputSize, err
	}

	report := walker.Walk(ctx, listing, op, walker.Options{
		Parallel: cfg.Parallel,
		OnResult: func(o walker.Outcome) { logOutcome(log, cfg, o) },
	})

	for _, path := range report.Skipped {
		log.Debugw("skipped", "path", path)
	}

	for _, o := range listing.Failed {
		log.Errorw("unreadable", "path", o.Path, "error", o.Err)
	}

	if cfg.Stats {
		printStats(r.Out, &report, time.Since(start))
	}

	// A cancellation that arrives after the last file started leaves nothing undone.
	if report.Remaining > 0 {
		log.Warnw("interrupted", "remaining", report.Remaining)

		return fmt.Errorf("%d file(s) not processed: %w", report.Remaining, ctx.Err())
	}

	if err := report.Err(); err != nil {
		return fmt.Errorf("running %s: %w", action(cfg), err)
	}

	log.Infow("done", "files", len(report.Succeeded), "size", humanize.IBytes(uint64(max(0, report.Bytes))))

	return nil
}

// preflight validates the target and lists the files to process.
func (r *Runner) preflight(cfg *config.Config) (walker.Listing, error) {
	if cfg.Directory == "" {
		info, err := fileutil.Lstat(r.Fs, cfg.File)
		if err != nil {
			return walker.Listing{}, fmt.Errorf("file %q: %w", cfg.File, err)
		}

		if !info.Mode().IsRegular() {
			return walker.Listing{}, fmt.Errorf("file %q: %w", cfg.File, fileutil.ErrNotRegular)
		}

		return walker.Listing{Files: []walker.Candidate{{Path: cfg.File, Size: info.Size()}}, Scanned: 1}, nil
	}

	if err := r.Gate.Check(cfg.Directory); err != nil {
		return walker.Listing{}, err //nolint:wrapcheck // already names the directory
	}

	root, err := safety.Resolve(cfg.Directory)
	if err != nil {
		return walker.Listing{}, err //nolint:wrapcheck // already names the directory
	}

	flt, err := filter.Sources{
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		IncludeFrom: cfg.IncludeFrom,
		ExcludeFrom: cfg.ExcludeFrom,
	}.Build(r.Fs)
	if err != nil {
		return walker.Listing{}, fmt.Errorf("building filter: %w", err)
	}

	listing, err := walker.Collect(r.Fs, root, flt)
	if err != nil {
		return walker.Listing{}, fmt.Errorf("directory %q: %w", cfg.Directory, err)
	}

	return listing, nil
}

// engine loads or derives the key material once for the whole run.
func (r *Runner) engine(cfg *config.Config) (*encryption.Engine, error) {
	params := cfg.Params()

	if cfg.Password {
		engine, err := encryption.NewPasswordEngine([]byte(cfg.Passphrase), params)
		if err != nil {
			return nil, fmt.Errorf("password: %w", err)
		}

		return engine, nil
	}

	path, err := cfg.KeyPath()
	if err != nil {
		return nil, err //nolint:wrapcheck // already descriptive
	}

	key, err := keys.Load(r.Fs, path)
	if err != nil {
		return nil, err //nolint:wrapcheck // carries the path
	}
	defer keys.Wipe(key)

	engine, err := encryption.NewRawEngine(key, params)
	if err != nil {
		return nil, fmt.Errorf("key %q: %w", path, err)
	}

	return engine, nil
}

// dryRun previews what would be processed without touching any file.
func (r *Runner) dryRun(listing walker.Listing, cfg *config.Config, start time.Time) {
	report := walker.Report{
		Skipped:  listing.Skipped,
		Failed:   listing.Failed,
		Scanned:  listing.Scanned,
		Excluded: listing.Excluded,
	}

	for _, file := range listing.Files {
		if !cfg.Quiet {
			fmt.Fprintf(r.Out, "Would %s %q\n", action(cfg), file.Path)
		}

		report.Succeeded = append(report.Succeeded, walker.Outcome{Path: file.Path, Size: file.Size})
		report.Bytes += file.Size
	}

	if cfg.Stats {
		printStats(r.Out, &report, time.Since(start))
	}
}

func logOutcome(log *zap.SugaredLogger, cfg *config.Config, o walker.Outcome) {
	if o.Err == nil {
		log.Infow(action(cfg)+"ed", "path", o.Path, "size", humanize.IBytes(uint64(max(0, o.Size))))

		return
	}

	reason := "io"

	var hint []any

	switch {
	case encryption.IsWrongKeyOrCorrupt(o.Err):
		reason = "wrong key or corrupt data"

		// The iteration count is not stored in the file.
		if cfg.Password && cfg.Decrypt {
			hint = []any{"hint", "the password and --iterations must match the ones used to encrypt"}
		}
	case fileutil.IsNotFound(o.Err):
		reason = "not found"
	case fileutil.IsPermission(o.Err):
		reason = "permission denied"
	}

	log.Errorw("failed", append([]any{"path", o.Path, "reason", reason, "error", o.Err}, hint...)...)
}

func action(cfg *config.Config) string {
	if cfg.Decrypt {
		return "decrypt"
	}

	return "encrypt"
}

func printStats(w io.Writer, report *walker.Report, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Scanned:   %d\n", report.Scanned)
	fmt.Fprintf(w, "  Excluded:  %d\n", report.Excluded)
	fmt.Fprintf(w, "  Skipped:   %d\n", len(report.Skipped))
	fmt.Fprintf(w, "  Processed: %d\n", len(report.Succeeded))
	fmt.Fprintf(w, "  Errors:    %d\n", len(report.Failed))
	//nolint:gosec // Bytes is always non-negative (sum of file sizes)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, report.Bytes))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
