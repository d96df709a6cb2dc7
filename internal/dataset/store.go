package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hupe1980/slicelog/internal/record"
)

// Store appends records to the workbook at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a logger for the Store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store backed by the workbook at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path returns the workbook path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored dataset. A missing or unreadable workbook is
// treated as empty.
func (s *Store) Load() *Dataset {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("dataset not found, starting empty", slog.String("path", s.path))
		return Empty()
	}

	ds, err := Read(s.path)
	if err != nil {
		s.logger.Debug("dataset unreadable, starting empty",
			slog.String("path", s.path), slog.String("error", err.Error()))

		return Empty()
	}

	return ds
}

// Append loads the dataset, adds r as the last row, and rewrites the whole
// workbook. It returns the number of data rows after the write.
func (s *Store) Append(r record.Record) (int, error) {
	ds := s.Load()
	ds.Append(r)

	if err := Write(s.path, ds); err != nil {
		return 0, fmt.Errorf("updating dataset: %w", err)
	}

	s.logger.Debug("dataset updated", slog.String("path", s.path), slog.Int("rows", ds.Len()))

	return ds.Len(), nil
}
