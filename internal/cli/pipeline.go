package cli

import (
	"context"
	"io"

	"github.com/hupe1980/slicelog/internal/config"
	"github.com/hupe1980/slicelog/internal/console"
	"github.com/hupe1980/slicelog/internal/dataset"
	"github.com/hupe1980/slicelog/internal/ingest"
	"github.com/hupe1980/slicelog/internal/logging"
	"github.com/hupe1980/slicelog/internal/slicer"
)

// newExtractor is swapped in tests to avoid running a real slicer.
var newExtractor = func(ctx context.Context, cfg *config.Config) (slicer.Extractor, error) {
	return slicer.New(cfg.Slicer,
		slicer.WithTimeout(cfg.SlicerTimeout),
		slicer.WithLogger(logging.Component(ctx, "slicer")),
	)
}

// components holds everything a command needs to process print files.
type components struct {
	cfg       *config.Config
	extractor slicer.Extractor
	store     *dataset.Store
	printer   *console.Printer
	pipeline  *ingest.Pipeline
}

// buildComponents wires the configured slicer and dataset together. Status
// lines go to status.
func buildComponents(ctx context.Context, status io.Writer) (*components, error) {
	cfg := config.FromContext(ctx)

	extractor, err := newExtractor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := dataset.NewStore(cfg.Dataset, dataset.WithLogger(logging.Component(ctx, "dataset")))
	printer := console.New(status, cfg.NoColor)

	return &components{
		cfg:       cfg,
		extractor: extractor,
		store:     store,
		printer:   printer,
		pipeline:  ingest.New(extractor, store, printer, logging.Component(ctx, "ingest")),
	}, nil
}
