package cli

import (
	"fmt"

	"github.com/mgpai22/subaudit/internal/config"
	"github.com/mgpai22/subaudit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subaudit",
	Short: "Timing and readability audit for SRT subtitles",
	Long: `Subaudit is a CLI tool that parses SubRip (SRT) subtitle files and
reports the statistics used to audit subtitle quality: reading speed,
line length, overlapping cues and silent gaps.

It never modifies the files it reads.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, resolved, exists, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debugw("Loaded configuration",
			"path", resolved,
			"exists", exists,
		)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file path (default ~/.config/subaudit/config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	rootCmd.PersistentFlags().
		StringP("format", "f", "", "Report format (table, json, yaml)")
	rootCmd.PersistentFlags().
		String("color", "", "Colorize table output (auto, always, never)")
	rootCmd.PersistentFlags().
		Int("long-line", 0, "Flag lines longer than this many characters (default 42)")
	rootCmd.PersistentFlags().
		Int("short-ms", 0, "Flag cues shorter than this many milliseconds (default 900)")
	rootCmd.PersistentFlags().
		StringP("encoding", "e", "", "Force the input charset instead of detecting it")
}

func currentConfig() *config.Config {
	if cfg == nil {
		d := config.Default()
		return &d
	}
	return cfg
}

func currentLogger() *logging.Logger {
	if logger == nil {
		return logging.NewNop()
	}
	return logger
}
