package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/subaudit/internal/stats"
)

//go:embed sample_config.toml
var sampleConfig string

// Analysis contains the thresholds used to flag cues.
type Analysis struct {
	LongLineThreshold int `toml:"long_line_threshold"`
	ShortDurationMS   int `toml:"short_duration_ms"`
}

// Input controls how subtitle bytes are decoded.
type Input struct {
	// Encoding forces a charset label; empty means detect.
	Encoding string `toml:"encoding"`
}

// Output controls report rendering.
type Output struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Batch contains directory analysis settings.
type Batch struct {
	Concurrency int  `toml:"concurrency"`
	Recursive   bool `toml:"recursive"`
}

// FFmpeg contains settings for extracting subtitle tracks from video files.
type FFmpeg struct {
	Path   string `toml:"path"`
	Stream int    `toml:"stream"`
}

// Config encapsulates all configuration values for subaudit.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Input    Input    `toml:"input"`
	Output   Output   `toml:"output"`
	Batch    Batch    `toml:"batch"`
	FFmpeg   FFmpeg   `toml:"ffmpeg"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analysis: Analysis{
			LongLineThreshold: stats.DefaultLongLineThreshold,
			ShortDurationMS:   int(stats.DefaultShortDuration / time.Millisecond),
		},
		Output: Output{
			Format: FormatTable,
			Color:  ColorAuto,
		},
		Batch: Batch{
			Concurrency: 4,
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subaudit/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error; defaults are returned with exists set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// StatsConfig converts the analysis section for the statistics engine.
func (c *Config) StatsConfig() stats.Config {
	return stats.Config{
		LongLineThreshold: c.Analysis.LongLineThreshold,
		ShortDuration:     time.Duration(c.Analysis.ShortDurationMS) * time.Millisecond,
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subaudit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
