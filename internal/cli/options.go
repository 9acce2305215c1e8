package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mgpai22/subaudit/internal/charset"
	"github.com/mgpai22/subaudit/internal/config"
	"github.com/mgpai22/subaudit/internal/report"
	"github.com/mgpai22/subaudit/internal/stats"
	"github.com/spf13/cobra"
)

// settings shared by analyze and batch after flags override the config
type runOptions struct {
	stats    stats.Config
	encoding string
	output   string
	render   report.Options
	color    string
}

func resolveOptions(cmd *cobra.Command, base *config.Config) (runOptions, error) {
	if base == nil {
		d := config.Default()
		base = &d
	}

	longLine, _ := cmd.Flags().GetInt("long-line")
	shortMS, _ := cmd.Flags().GetInt("short-ms")
	formatStr, _ := cmd.Flags().GetString("format")
	colorMode, _ := cmd.Flags().GetString("color")
	encoding, _ := cmd.Flags().GetString("encoding")
	outputPath, _ := cmd.Flags().GetString("output")
	details, _ := cmd.Flags().GetBool("details")

	if longLine < 0 {
		return runOptions{}, fmt.Errorf("long-line must be positive, got %d", longLine)
	}
	if shortMS < 0 {
		return runOptions{}, fmt.Errorf("short-ms must be positive, got %d", shortMS)
	}

	statsCfg := base.StatsConfig()
	if longLine > 0 {
		statsCfg.LongLineThreshold = longLine
	}
	if shortMS > 0 {
		statsCfg.ShortDuration = time.Duration(shortMS) * time.Millisecond
	}

	if formatStr == "" {
		formatStr = base.Output.Format
	}
	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return runOptions{}, err
	}

	if colorMode == "" {
		colorMode = base.Output.Color
	}
	switch colorMode {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return runOptions{}, fmt.Errorf("unsupported color mode %q: use auto, always, or never", colorMode)
	}

	if encoding == "" {
		encoding = base.Input.Encoding
	}
	if encoding != "" {
		if _, _, err := charset.Lookup(encoding); err != nil {
			return runOptions{}, err
		}
	}

	return runOptions{
		stats:    statsCfg,
		encoding: encoding,
		output:   outputPath,
		color:    colorMode,
		render: report.Options{
			Format:  format,
			Details: details,
		},
	}, nil
}

// opens the report destination; the returned func closes it
func openOutput(opts *runOptions, stdout io.Writer) (io.Writer, func() error, error) {
	if opts.output == "" {
		opts.render.Color = report.ShouldColorize(stdout, opts.color)
		return stdout, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.output), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(opts.output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	opts.render.Color = report.ShouldColorize(file, opts.color)
	return file, file.Close, nil
}
