package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/mgpai22/subaudit/internal/stats"
)

// supported output formats
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: use table, json, or yaml", s)
	}
}

type Options struct {
	Format Format
	Color  bool
	// list every flagged cue instead of only the counts
	Details bool
}

// ShouldColorize decides whether ANSI colors are written to w. mode is
// one of auto, always, or never.
func ShouldColorize(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Renderer writes reports in one output format
type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	return &Renderer{opts: opts}
}

// RenderFile writes the report for a single file.
func (r *Renderer) RenderFile(w io.Writer, fr stats.FileReport) error {
	switch r.opts.Format {
	case FormatJSON:
		return writeJSON(w, fr)
	case FormatYAML:
		return writeYAML(w, fr)
	default:
		_, err := io.WriteString(w, r.fileTables(fr))
		return err
	}
}

type batchDocument struct {
	Files   []stats.FileReport `json:"files" yaml:"files"`
	Summary stats.Summary      `json:"summary" yaml:"summary"`
}

// RenderBatch writes per-file rows followed by the comparative summary.
func (r *Renderer) RenderBatch(
	w io.Writer,
	files []stats.FileReport,
	summary stats.Summary,
) error {
	doc := batchDocument{Files: files, Summary: summary}
	switch r.opts.Format {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatYAML:
		return writeYAML(w, doc)
	default:
		_, err := io.WriteString(w, r.batchTables(files, summary))
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return enc.Close()
}
