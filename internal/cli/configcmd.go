package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/slicelog/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Config prints the configuration after merging the config file,
SLICELOG_* environment variables, and flags. Keys match the config file
and flag names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())

			data, err := sigsyaml.Marshal(configView(cfg))
			if err != nil {
				return fmt.Errorf("serializing config: %w", err)
			}

			if cfg.ConfigFile != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", cfg.ConfigFile)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	return cmd
}

// configView keys the config by its file/flag names, durations as text.
func configView(cfg *config.Config) map[string]any {
	return map[string]any{
		"slicer":         cfg.Slicer,
		"watch-dir":      cfg.WatchDir,
		"dataset":        cfg.Dataset,
		"extension":      cfg.Extension,
		"settle-delay":   cfg.SettleDelay.String(),
		"slicer-timeout": cfg.SlicerTimeout.String(),
		"log-level":      cfg.LogLevel,
		"log-format":     cfg.LogFormat,
		"no-color":       cfg.NoColor,
		"quiet":          cfg.Quiet,
	}
}
