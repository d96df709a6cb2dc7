package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/slicelog/internal/dataset"
	"github.com/hupe1980/slicelog/internal/logging"
	"github.com/hupe1980/slicelog/internal/output"
)

type extractOptions struct {
	format string
	output string
	append bool
}

func newExtractCommand() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Run the slicer on existing print files and print the results",
		Long: `Extract runs the slicer once per file with --info and prints the parsed
record without waiting for filesystem events. Fields the slicer did not
report are shown as N/A.

Use --append to also add every successful record to the dataset workbook.
If the slicer fails on any file the command exits non-zero after all
files have been tried.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", string(output.FormatYAML), "output format: yaml, json, table, csv")
	f.StringVarP(&opts.output, "output", "o", "", "write results to a file instead of stdout")
	f.BoolVar(&opts.append, "append", false, "append successful records to the dataset")

	return cmd
}

func runExtract(cmd *cobra.Command, files []string, opts *extractOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	ctx := cmd.Context()

	c, err := buildComponents(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	results := dataset.Empty()
	failed := 0

	for _, path := range files {
		if opts.append {
			rec, procErr := c.pipeline.Process(ctx, path)
			if procErr != nil {
				failed++
				continue
			}

			results.Append(rec)

			continue
		}

		rec, exErr := c.extractor.Extract(ctx, path)
		if exErr != nil {
			c.printer.SlicerFailed(fmt.Errorf("%s: %w", path, exErr))

			failed++

			continue
		}

		results.Append(rec)
	}

	if results.Len() > 0 {
		data, renderErr := output.Render(results, format)
		if renderErr != nil {
			return renderErr
		}

		w := output.New(opts.output, cmd.OutOrStdout(), output.WithLogger(logging.FromContext(ctx)))
		if writeErr := w.Write(data); writeErr != nil {
			return writeErr
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be processed", failed, len(files))
	}

	return nil
}
