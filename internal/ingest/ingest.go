// Package ingest turns a newly created print file into a dataset row: it
// runs the extractor and, only when that succeeds, appends the record.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/slicelog/internal/console"
	"github.com/hupe1980/slicelog/internal/record"
	"github.com/hupe1980/slicelog/internal/slicer"
)

// Appender adds one record to the persisted dataset.
type Appender interface {
	Append(r record.Record) (int, error)
	Path() string
}

// Pipeline handles "file created" notifications.
type Pipeline struct {
	extractor slicer.Extractor
	store     Appender
	printer   *console.Printer
	logger    *slog.Logger
}

// New wires an extractor to a store. A nil printer discards status lines and
// a nil logger falls back to slog.Default().
func New(extractor slicer.Extractor, store Appender, printer *console.Printer, logger *slog.Logger) *Pipeline {
	if printer == nil {
		printer = console.New(nil, true)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		extractor: extractor,
		store:     store,
		printer:   printer,
		logger:    logger,
	}
}

// OnFileCreated processes one detected file and reports the outcome. It
// never fails; errors are printed and logged.
func (p *Pipeline) OnFileCreated(ctx context.Context, path string) {
	_, _ = p.Process(ctx, path)
}

// Process extracts a record from path and appends it to the store. When
// extraction fails the store is not called.
func (p *Pipeline) Process(ctx context.Context, path string) (rec record.Record, err error) {
	p.printer.Detected(path)

	rec, err = p.extractor.Extract(ctx, path)
	if err != nil {
		p.printer.SlicerFailed(err)
		p.logger.Error("extraction failed", slog.String("path", path), slog.String("error", err.Error()))

		return record.Record{}, fmt.Errorf("extracting %s: %w", path, err)
	}

	rows, err := p.store.Append(rec)
	if err != nil {
		p.printer.StoreFailed(p.store.Path(), err)
		p.logger.Error("dataset update failed", slog.String("path", p.store.Path()), slog.String("error", err.Error()))

		return rec, err
	}

	p.printer.Appended(p.store.Path(), rec)
	p.logger.Debug("record appended", slog.String("file", rec.FileName), slog.Int("rows", rows))

	return rec, nil
}
