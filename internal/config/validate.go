package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mgpai22/subaudit/internal/charset"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

func (c *Config) normalize() error {
	c.Input.Encoding = strings.TrimSpace(c.Input.Encoding)
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = FormatTable
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}

	var err error
	if c.FFmpeg.Path, err = expandPath(strings.TrimSpace(c.FFmpeg.Path)); err != nil {
		return fmt.Errorf("ffmpeg.path: %w", err)
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if c.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch.concurrency must be positive, got %d", c.Batch.Concurrency)
	}
	if c.FFmpeg.Stream < 0 {
		return fmt.Errorf("ffmpeg.stream must not be negative, got %d", c.FFmpeg.Stream)
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.LongLineThreshold <= 0 {
		return errors.New("analysis.long_line_threshold must be positive")
	}
	if c.Analysis.ShortDurationMS <= 0 {
		return errors.New("analysis.short_duration_ms must be positive")
	}
	return nil
}

func (c *Config) validateInput() error {
	if c.Input.Encoding == "" {
		return nil
	}
	if _, _, err := charset.Lookup(c.Input.Encoding); err != nil {
		return fmt.Errorf("input.encoding: %w", err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format %q: use table, json, or yaml", c.Output.Format)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color %q: use auto, always, or never", c.Output.Color)
	}
	return nil
}
