package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler receives qualifying "file created" events.
type Handler interface {
	OnFileCreated(ctx context.Context, path string)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, path string)

// OnFileCreated calls f(ctx, path).
func (f HandlerFunc) OnFileCreated(ctx context.Context, path string) { f(ctx, path) }

// Options configures the watch behaviour.
type Options struct {
	// Dir is the directory to observe. Subdirectories are not watched.
	Dir string

	// Extension is the case-sensitive file name suffix that triggers processing.
	Extension string

	// SettleDelay is how long to wait after a file appears before handing it
	// to the handler, so the producing application can finish writing it.
	SettleDelay time.Duration

	// OnReady, if set, is called once the directory subscription is active.
	OnReady func()

	// Logger is used for structured logging.
	Logger *slog.Logger
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Extension:   ".3mf",
		SettleDelay: time.Second,
		Logger:      slog.Default(),
	}
}

// Run subscribes to creation events in opts.Dir and blocks until the context
// is cancelled or a SIGINT/SIGTERM signal is received. Events are handled one
// at a time on the calling goroutine; a slow handler delays later events.
func Run(ctx context.Context, opts Options, h Handler) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if h == nil {
		return errors.New("watch handler must not be nil")
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		return fmt.Errorf("watching directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("watching directory: %s is not a directory", opts.Dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(opts.Dir); err != nil {
		return fmt.Errorf("watching directory: %w", err)
	}

	// Trap SIGINT / SIGTERM for graceful shutdown.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts.Logger.Debug("watch started",
		slog.String("dir", opts.Dir),
		slog.String("extension", opts.Extension),
		slog.Duration("settleDelay", opts.SettleDelay))

	if opts.OnReady != nil {
		opts.OnReady()
	}

	for {
		select {
		case <-sigCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isCandidate(event, opts.Extension) {
				continue
			}

			if fi, statErr := os.Stat(event.Name); statErr != nil {
				opts.Logger.Debug("skipping vanished entry",
					slog.String("path", event.Name), slog.String("error", statErr.Error()))

				continue
			} else if fi.IsDir() {
				continue
			}

			if !settle(sigCtx, opts.SettleDelay) {
				return nil
			}

			dispatch(sigCtx, opts.Logger, h, event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// settle waits for d, returning false if ctx ends first.
func settle(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// dispatch runs the handler for one event. A panic ends only this event.
func dispatch(ctx context.Context, logger *slog.Logger, h Handler, path string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("file handler panicked", slog.String("path", path), slog.Any("error", r))
		}
	}()

	h.OnFileCreated(ctx, path)
}

// isCandidate keeps creation events whose base name ends in ext.
func isCandidate(event fsnotify.Event, ext string) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}

	return strings.HasSuffix(filepath.Base(event.Name), ext)
}
