package report

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/subaudit/internal/stats"
	"github.com/mgpai22/subaudit/internal/subtitle"
)

const overlapping = `1
00:00:01,000 --> 00:00:03,000
Hi

2
00:00:02,000 --> 00:00:04,000
There
`

func sampleFileReport() stats.FileReport {
	cues := subtitle.Parse(overlapping)
	return stats.FileReport{
		Path:     "/subs/movie.srt",
		Name:     "movie.srt",
		Encoding: "UTF-8",
		Report:   stats.Analyze(cues, stats.DefaultConfig()),
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":       FormatTable,
		"table":  FormatTable,
		" JSON ": FormatJSON,
		"yaml":   FormatYAML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestShouldColorize(t *testing.T) {
	var buf bytes.Buffer
	if ShouldColorize(&buf, "auto") {
		t.Error("buffers are never terminals")
	}
	if !ShouldColorize(&buf, "always") {
		t.Error("always should force color")
	}
	if ShouldColorize(os.Stdout, "never") {
		t.Error("never should disable color")
	}

	t.Setenv("NO_COLOR", "1")
	if ShouldColorize(os.Stdout, "auto") {
		t.Error("NO_COLOR should disable color")
	}
}

func TestRenderFileTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(Options{})
	if err := r.RenderFile(&buf, sampleFileReport()); err != nil {
		t.Fatalf("RenderFile returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"SUBTITLE STATISTICS",
		"/subs/movie.srt",
		"True display time",
		"00:00:03,000",
		"00:00:04,000",
		"Overlaps",
		"LONGEST LINES",
		"There",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no ANSI escapes without color")
	}
	if strings.Contains(out, "OVERLAPPING CUES") {
		t.Error("overlap details should require Details")
	}
}

func TestRenderFileTableDetails(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(Options{Details: true})
	if err := r.RenderFile(&buf, sampleFileReport()); err != nil {
		t.Fatalf("RenderFile returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "OVERLAPPING CUES") {
		t.Errorf("expected overlap table:\n%s", out)
	}
	if !strings.Contains(out, "1 / 2") {
		t.Errorf("expected overlapping cue indexes:\n%s", out)
	}
}

func TestRenderFileJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(Options{Format: FormatJSON})
	if err := r.RenderFile(&buf, sampleFileReport()); err != nil {
		t.Fatalf("RenderFile returned error: %v", err)
	}

	var decoded struct {
		Path   string `json:"path"`
		Report struct {
			Cues          int   `json:"cues"`
			TrueDisplayMS int64 `json:"true_display_ms"`
			DurationSumMS int64 `json:"duration_sum_ms"`
			Overlaps      []struct {
				DurationMS int64 `json:"duration_ms"`
			} `json:"overlaps"`
			ShortCues []any `json:"short_cues"`
		} `json:"report"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Path != "/subs/movie.srt" || decoded.Report.Cues != 2 {
		t.Errorf("unexpected document %+v", decoded)
	}
	if decoded.Report.TrueDisplayMS != 3000 || decoded.Report.DurationSumMS != 4000 {
		t.Errorf("unexpected durations %+v", decoded.Report)
	}
	if len(decoded.Report.Overlaps) != 1 || decoded.Report.Overlaps[0].DurationMS != 1000 {
		t.Errorf("unexpected overlaps %+v", decoded.Report.Overlaps)
	}
	if !strings.Contains(buf.String(), `"short_cues": []`) {
		t.Error("expected empty lists to serialize as []")
	}
}

func TestRenderBatchYAML(t *testing.T) {
	files := []stats.FileReport{sampleFileReport()}
	var buf bytes.Buffer
	r := NewRenderer(Options{Format: FormatYAML})
	if err := r.RenderBatch(&buf, files, stats.Summarize(files)); err != nil {
		t.Fatalf("RenderBatch returned error: %v", err)
	}

	var decoded struct {
		Files []struct {
			Name string `yaml:"name"`
		} `yaml:"files"`
		Summary struct {
			Files         int `yaml:"files"`
			TotalOverlaps int `yaml:"total_overlaps"`
		} `yaml:"summary"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(decoded.Files) != 1 || decoded.Files[0].Name != "movie.srt" {
		t.Errorf("unexpected files %+v", decoded.Files)
	}
	if decoded.Summary.Files != 1 || decoded.Summary.TotalOverlaps != 1 {
		t.Errorf("unexpected summary %+v", decoded.Summary)
	}
}

func TestRenderBatchTable(t *testing.T) {
	files := []stats.FileReport{sampleFileReport()}
	var buf bytes.Buffer
	if err := NewRenderer(Options{}).RenderBatch(&buf, files, stats.Summarize(files)); err != nil {
		t.Fatalf("RenderBatch returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"FILES", "movie.srt", "Basic File Statistics", "Notable Files", "Encoding Distribution", "UTF-8"} {
		if !strings.Contains(out, want) {
			t.Errorf("batch output missing %q:\n%s", want, out)
		}
	}
}
