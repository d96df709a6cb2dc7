// Package slicelog provides a public Go API for logging slicer estimates of
// print files into an Excel dataset.
//
// It exposes the same pipeline as the slicelog CLI, allowing programmatic
// use without cobra or a config file.
//
// Basic usage:
//
//	rec, err := slicelog.Extract(ctx, "benchy.3mf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rec)
//
// Watching a folder until ctx is cancelled:
//
//	err := slicelog.Watch(ctx, "prints", "slicing_info.xlsx",
//	    slicelog.WithSlicer("/usr/local/bin/orca-slicer"),
//	    slicelog.WithOutput(os.Stdout),
//	)
package slicelog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/hupe1980/slicelog/internal/config"
	"github.com/hupe1980/slicelog/internal/console"
	"github.com/hupe1980/slicelog/internal/dataset"
	"github.com/hupe1980/slicelog/internal/ingest"
	"github.com/hupe1980/slicelog/internal/logging"
	"github.com/hupe1980/slicelog/internal/record"
	"github.com/hupe1980/slicelog/internal/slicer"
	"github.com/hupe1980/slicelog/internal/watch"
)

// Record is one row of slicing metadata. Missing fields hold NotAvailable.
type Record = record.Record

// NotAvailable marks a field the slicer did not report.
const NotAvailable = record.NotAvailable

// ErrToolFailed matches errors caused by the slicer exiting non-zero.
var ErrToolFailed = slicer.ErrToolFailed

// Option configures Extract and Watch.
// Use the With* functions to create Options.
type Option func(*options)

type options struct {
	slicer        string
	slicerTimeout time.Duration
	settleDelay   time.Duration
	extension     string
	logger        *slog.Logger
	output        io.Writer
}

// WithSlicer sets the slicer executable (default: OrcaSlicer on macOS).
func WithSlicer(path string) Option { return func(o *options) { o.slicer = path } }

// WithSlicerTimeout bounds each slicer run. Zero means no bound.
func WithSlicerTimeout(d time.Duration) Option {
	return func(o *options) { o.slicerTimeout = d }
}

// WithSettleDelay sets the wait between detecting and reading a file
// (default: 1s).
func WithSettleDelay(d time.Duration) Option { return func(o *options) { o.settleDelay = d } }

// WithExtension sets the file suffix that triggers processing (default: ".3mf").
func WithExtension(ext string) Option { return func(o *options) { o.extension = ext } }

// WithLogger sets the diagnostic logger. Logs are discarded by default.
func WithLogger(logger *slog.Logger) Option { return func(o *options) { o.logger = logger } }

// WithOutput sets where status lines are printed. They are discarded by
// default.
func WithOutput(w io.Writer) Option { return func(o *options) { o.output = w } }

func newOptions(opts []Option) *options {
	o := &options{
		slicer:      config.DefaultSlicer,
		settleDelay: config.DefaultSettleDelay,
		extension:   config.DefaultExtension,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = logging.Discard()
	}

	if o.output == nil {
		o.output = io.Discard
	}

	return o
}

func (o *options) extractor() (*slicer.Client, error) {
	return slicer.New(o.slicer,
		slicer.WithTimeout(o.slicerTimeout),
		slicer.WithLogger(o.logger.With(slog.String("component", "slicer"))),
	)
}

// Extract runs the slicer once on path and returns the parsed record.
func Extract(ctx context.Context, path string, opts ...Option) (Record, error) {
	if path == "" {
		return Record{}, errors.New("path must not be empty")
	}

	ex, err := newOptions(opts).extractor()
	if err != nil {
		return Record{}, err
	}

	return ex.Extract(ctx, path)
}

// Append adds r as the last row of the workbook at datasetPath, creating it
// when missing. A workbook that cannot be read is replaced.
func Append(datasetPath string, r Record) error {
	if datasetPath == "" {
		return errors.New("dataset path must not be empty")
	}

	_, err := dataset.NewStore(datasetPath, dataset.WithLogger(logging.Discard())).Append(r)

	return err
}

// Watch observes dir for new files and appends a row to datasetPath for
// each one. It blocks until ctx is cancelled or SIGINT/SIGTERM arrives and
// then returns nil.
func Watch(ctx context.Context, dir, datasetPath string, opts ...Option) error {
	if datasetPath == "" {
		return errors.New("dataset path must not be empty")
	}

	o := newOptions(opts)

	ex, err := o.extractor()
	if err != nil {
		return err
	}

	printer := console.New(o.output, false)
	store := dataset.NewStore(datasetPath, dataset.WithLogger(o.logger.With(slog.String("component", "dataset"))))
	pipeline := ingest.New(ex, store, printer, o.logger.With(slog.String("component", "ingest")))

	err = watch.Run(ctx, watch.Options{
		Dir:         dir,
		Extension:   o.extension,
		SettleDelay: o.settleDelay,
		Logger:      o.logger.With(slog.String("component", "watch")),
		OnReady:     func() { printer.Watching(dir) },
	}, pipeline)
	if err != nil {
		return err
	}

	printer.Stopping()

	return nil
}
