// Package console prints the emoji-tagged status lines a user sees while
// slicelog runs. Diagnostics go through slog; these lines are the
// human-facing feed.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/hupe1980/slicelog/internal/record"
)

// Printer writes status lines to a stream.
type Printer struct {
	out io.Writer

	watch *color.Color
	info  *color.Color
	ok    *color.Color
	warn  *color.Color
	fail  *color.Color
}

// New returns a Printer writing to out. Color is used only when noColor is
// false and out is a terminal.
func New(out io.Writer, noColor bool) *Printer {
	if out == nil {
		out = io.Discard
	}

	colored := !noColor && IsTerminal(out)

	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}

		return c
	}

	return &Printer{
		out:   out,
		watch: mk(color.FgCyan, color.Bold),
		info:  mk(color.FgBlue),
		ok:    mk(color.FgGreen),
		warn:  mk(color.FgYellow),
		fail:  mk(color.FgRed),
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Watching announces the observed directory.
func (p *Printer) Watching(dir string) {
	p.line(p.watch, "👀 Watching folder: %s", dir)
}

// Detected announces a qualifying new file.
func (p *Printer) Detected(path string) {
	p.line(p.info, "📂 New file detected: %s", path)
}

// SlicerFailed reports a failed extraction.
func (p *Printer) SlicerFailed(err error) {
	p.line(p.fail, "❌ Error running slicer CLI: %v", err)
}

// Appended confirms a record was written to the dataset.
func (p *Printer) Appended(datasetPath string, r record.Record) {
	p.line(p.ok, "✅ Data added to %s: %s", datasetPath, r)
}

// StoreFailed reports that the dataset could not be rewritten.
func (p *Printer) StoreFailed(datasetPath string, err error) {
	p.line(p.warn, "⚠️ Could not update %s: %v", datasetPath, err)
}

// Stopping announces shutdown.
func (p *Printer) Stopping() {
	fmt.Fprintln(p.out)
	p.line(p.watch, "🛑 Stopping folder watcher...")
}

func (p *Printer) line(c *color.Color, format string, args ...any) {
	c.Fprintf(p.out, format, args...) //nolint:errcheck
	fmt.Fprintln(p.out)
}
