// Package slicer runs the external slicing tool against a print file and
// extracts filament and time estimates from its text output.
package slicer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/slicelog/internal/record"
)

// InfoFlag asks the slicer to print model information instead of slicing.
const InfoFlag = "--info"

// ErrToolFailed reports that the slicer exited with a non-zero status.
var ErrToolFailed = errors.New("slicer exited with non-zero status")

// ToolError carries the exit status and captured output of a failed run.
type ToolError struct {
	ExitCode int
	Output   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s (exit status %d)", ErrToolFailed, e.ExitCode)
}

// Is lets errors.Is match ErrToolFailed.
func (e *ToolError) Is(target error) bool { return target == ErrToolFailed }

// Executor abstracts command execution for testability.
type Executor interface {
	// Output runs binary with args and returns its combined stdout and stderr.
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Extractor produces one record per print file.
type Extractor interface {
	Extract(ctx context.Context, path string) (record.Record, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds a single slicer run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for invocation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps slicer CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// New constructs a slicer client for the given executable.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("slicer binary required")
	}

	c := &Client{
		binary: binary,
		exec:   commandExecutor{},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Binary returns the configured executable path.
func (c *Client) Binary() string {
	return c.binary
}

// Extract runs `<binary> <path> --info` once and parses its output. A
// non-zero exit yields an error matching ErrToolFailed and no record.
func (c *Client) Extract(ctx context.Context, path string) (record.Record, error) {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{path, InfoFlag}

	c.logger.Debug("running slicer", slog.String("binary", c.binary), slog.Any("args", args))

	out, err := c.exec.Output(runCtx, c.binary, args)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return record.Record{}, &ToolError{ExitCode: exitErr.ExitCode(), Output: string(out)}
		}

		return record.Record{}, fmt.Errorf("running slicer %s: %w", c.binary, err)
	}

	return Parse(filepath.Base(path), string(out)), nil
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}
