// Package config provides configuration management for slicelog.
//
// Configuration is loaded from three sources with the following precedence
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SLICELOG_ prefix)
//  3. Config file (.slicelog.yaml)
//
// The defaults reproduce the classic fixed setup, so running without any of
// the above watches the current directory with OrcaSlicer on macOS.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Defaults for the processing pipeline.
const (
	DefaultSlicer      = "/Applications/OrcaSlicer.app/Contents/MacOS/OrcaSlicer"
	DefaultWatchDir    = "."
	DefaultDataset     = "slicing_info.xlsx"
	DefaultExtension   = ".3mf"
	DefaultSettleDelay = time.Second
)

// Config represents the global configuration for slicelog.
type Config struct {
	// Slicer is the path to the slicing tool executable.
	Slicer string `mapstructure:"slicer" json:"slicer"`

	// WatchDir is the directory observed for new print files.
	WatchDir string `mapstructure:"watch-dir" json:"watchDir"`

	// Dataset is the spreadsheet that collects one row per print file.
	Dataset string `mapstructure:"dataset" json:"dataset"`

	// Extension is the file suffix that triggers processing.
	Extension string `mapstructure:"extension" json:"extension"`

	// SettleDelay is the wait between detecting a file and reading it.
	SettleDelay time.Duration `mapstructure:"settle-delay" json:"settleDelay"`

	// SlicerTimeout bounds a single slicer run; zero means no bound.
	SlicerTimeout time.Duration `mapstructure:"slicer-timeout" json:"slicerTimeout"`

	// LogLevel controls the verbosity of log output.
	// Valid values: debug, info, warn, error.
	LogLevel string `mapstructure:"log-level" json:"logLevel"`

	// LogFormat controls the format of log output.
	// Valid values: text, json.
	LogFormat string `mapstructure:"log-format" json:"logFormat"`

	// NoColor disables colored output.
	NoColor bool `mapstructure:"no-color" json:"noColor"`

	// Quiet suppresses all log output below error level.
	Quiet bool `mapstructure:"quiet" json:"quiet"`

	// ConfigFile is the resolved path to the config file used.
	// Set after Load(), not read from config itself.
	ConfigFile string `mapstructure:"-" json:"-"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Slicer:      DefaultSlicer,
		WatchDir:    DefaultWatchDir,
		Dataset:     DefaultDataset,
		Extension:   DefaultExtension,
		SettleDelay: DefaultSettleDelay,
		LogLevel:    LogLevelInfo,
		LogFormat:   LogFormatText,
	}
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		// valid
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
		// valid
	default:
		return fmt.Errorf("invalid log format %q: must be one of text, json", c.LogFormat)
	}

	var errs []error

	if strings.TrimSpace(c.Slicer) == "" {
		errs = append(errs, errors.New("slicer must not be empty"))
	}

	if strings.TrimSpace(c.WatchDir) == "" {
		errs = append(errs, errors.New("watch-dir must not be empty"))
	}

	switch ext := strings.ToLower(filepath.Ext(c.Dataset)); ext {
	case ".xlsx", ".xlsm":
		// valid
	default:
		errs = append(errs, fmt.Errorf("invalid dataset %q: must be an .xlsx or .xlsm file", c.Dataset))
	}

	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		errs = append(errs, fmt.Errorf("invalid extension %q: must start with '.'", c.Extension))
	}

	if c.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("invalid settle-delay %s: must not be negative", c.SettleDelay))
	}

	if c.SlicerTimeout < 0 {
		errs = append(errs, fmt.Errorf("invalid slicer-timeout %s: must not be negative", c.SlicerTimeout))
	}

	return errors.Join(errs...)
}

// EffectiveLogLevel returns the log level to use. When Quiet is true the log
// level is overridden to "error" regardless of the configured LogLevel.
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet {
		return LogLevelError
	}

	return c.LogLevel
}

// Load initialises configuration from flags, environment variables, and an
// optional config file. A fresh viper instance is used on every call so that
// Load is safe for concurrent tests.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("slicer", d.Slicer)
	v.SetDefault("watch-dir", d.WatchDir)
	v.SetDefault("dataset", d.Dataset)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("settle-delay", d.SettleDelay)
	v.SetDefault("slicer-timeout", d.SlicerTimeout)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("no-color", false)
	v.SetDefault("quiet", false)
}

// configureEnv sets up environment variable support.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("SLICELOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// configureFile sets up the config file source.
func configureFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}

		return nil
	}

	// Auto-discovery mode.
	v.SetConfigName(".slicelog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "slicelog"))
	}

	if err := v.ReadInConfig(); err != nil {
		// No config file found → perfectly fine in auto-discovery.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		// Found a file but it was malformed.
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// bindFlags walks from cmd up to the root and binds all PersistentFlags.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext extracts a Config from ctx, falling back to Default().
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}

	return Default()
}
