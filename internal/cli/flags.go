package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/slicelog/internal/config"
)

// registerLoggingFlags adds the log and color flags shared by every command.
func registerLoggingFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("log-level", config.LogLevelInfo, "log level: debug, info, warn, error")
	pf.String("log-format", config.LogFormatText, "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
}

// registerPipelineFlags adds the slicer, folder and dataset flags. Their
// names match the config keys so viper binds them directly.
func registerPipelineFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("slicer", config.DefaultSlicer, "path to the slicer executable")
	pf.StringP("watch-dir", "w", config.DefaultWatchDir, "folder to watch for new print files")
	pf.StringP("dataset", "d", config.DefaultDataset, "Excel workbook that collects the results")
	pf.String("extension", config.DefaultExtension, "file suffix that triggers processing")
	pf.Duration("settle-delay", config.DefaultSettleDelay, "wait before reading a newly created file")
	pf.Duration("slicer-timeout", 0, "abort a slicer run after this long (0 = no limit)")
}

// registerGlobalFlags adds every persistent flag of the root command.
func registerGlobalFlags(cmd *cobra.Command) {
	registerLoggingFlags(cmd)
	registerPipelineFlags(cmd)
}
