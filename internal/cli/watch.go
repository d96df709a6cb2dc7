package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/slicelog/internal/logging"
	"github.com/hupe1980/slicelog/internal/watch"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [folder]",
		Short: "Watch a folder and log every new print file",
		Long: `Watch monitors a folder (not its subfolders) for newly created files
with the configured extension. Each new file is given a short settle delay,
passed to the slicer with --info, and the parsed filament color, filament
amount, and print time are appended as a row to the dataset workbook.

Files are processed one at a time. A slicer failure skips the file and the
watcher keeps running. Press Ctrl-C to stop.

The folder argument overrides --watch-dir.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}

			return runWatch(cmd, dir)
		},
	}

	return cmd
}

// runWatch is the foreground driver: it binds the watcher to one folder and
// blocks until interrupted.
func runWatch(cmd *cobra.Command, dirOverride string) error {
	ctx := cmd.Context()

	c, err := buildComponents(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	dir := c.cfg.WatchDir
	if dirOverride != "" {
		dir = dirOverride
	}

	opts := watch.Options{
		Dir:         dir,
		Extension:   c.cfg.Extension,
		SettleDelay: c.cfg.SettleDelay,
		Logger:      logging.Component(ctx, "watch"),
		OnReady: func() {
			c.printer.Watching(dir)
		},
	}

	if err := watch.Run(ctx, opts, c.pipeline); err != nil {
		return err
	}

	c.printer.Stopping()

	return nil
}
