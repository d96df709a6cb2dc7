package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/slicelog/internal/config"
	"github.com/hupe1980/slicelog/internal/dataset"
	"github.com/hupe1980/slicelog/internal/logging"
	"github.com/hupe1980/slicelog/internal/output"
)

type showOptions struct {
	format string
	output string
}

func newShowCommand() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the rows stored in the dataset",
		Long: `Show loads the dataset workbook and prints its rows. A missing or
unreadable workbook is shown as empty, exactly as the watcher would treat
it before appending.

Use --format csv -o rows.csv to export the rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", string(output.FormatTable), "output format: table, yaml, json, csv")
	f.StringVarP(&opts.output, "output", "o", "", "write rows to a file instead of stdout")

	return cmd
}

func runShow(cmd *cobra.Command, opts *showOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	ds := dataset.NewStore(cfg.Dataset, dataset.WithLogger(logger)).Load()

	data, err := output.Render(ds, format)
	if err != nil {
		return err
	}

	return output.New(opts.output, cmd.OutOrStdout(), output.WithLogger(logger)).Write(data)
}
