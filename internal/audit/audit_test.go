package audit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mgpai22/subaudit/internal/logging"
	"github.com/mgpai22/subaudit/internal/stats"
	"github.com/mgpai22/subaudit/internal/subtitle"
	"github.com/mgpai22/subaudit/internal/video"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:03,000\nHi\n\n2\n00:00:02,000 --> 00:00:04,000\nThere\n"

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// writes a fixed SRT instead of running ffmpeg
type fakeExtractor struct {
	content string
	err     error
	calls   []video.ExtractSubtitleOptions
}

func (f *fakeExtractor) ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	opts video.ExtractSubtitleOptions,
) error {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte(f.content), 0o644)
}

func TestAnalyzeFile(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "movie.srt"), sampleSRT)
	p := &Pipeline{Stats: stats.DefaultConfig()}

	fr, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile returned error: %v", err)
	}
	if fr.Path != path || fr.Name != "movie.srt" {
		t.Errorf("unexpected identity %q / %q", fr.Path, fr.Name)
	}
	if fr.Encoding == "" {
		t.Error("expected encoding to be reported")
	}
	if fr.Report.Cues != 2 || fr.Report.TrueDisplayMS != 3000 || len(fr.Report.Overlaps) != 1 {
		t.Errorf("unexpected report %+v", fr.Report)
	}
}

func TestAnalyzeFileLogsEmptyFile(t *testing.T) {
	core, observed := observer.New(zap.DebugLevel)
	path := writeFile(t, filepath.Join(t.TempDir(), "empty.srt"), "")
	p := &Pipeline{Logger: logging.New(zap.New(core))}

	fr, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile returned error: %v", err)
	}
	if fr.Report.Cues != 0 {
		t.Errorf("expected no cues, got %d", fr.Report.Cues)
	}
	if observed.FilterMessage("No cues found").Len() != 1 {
		t.Errorf("expected a warning for the empty file, got %v", observed.All())
	}
}

func TestAnalyzeFileVideoWithoutExtractor(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "movie.mkv"), "video")
	p := &Pipeline{}

	_, err := p.AnalyzeFile(context.Background(), path)
	if !errors.Is(err, subtitle.ErrUnsupportedInput) {
		t.Fatalf("expected ErrUnsupportedInput, got %v", err)
	}
}

func TestAnalyzeFileVideoExtracts(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "movie.mkv"), "video")
	ex := &fakeExtractor{content: sampleSRT}
	p := &Pipeline{Extractor: ex, Stream: 2}

	fr, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile returned error: %v", err)
	}
	if fr.Path != path || fr.Report.Cues != 2 {
		t.Errorf("unexpected report for video: %+v", fr)
	}
	if len(ex.calls) != 1 || ex.calls[0].Stream != 2 {
		t.Errorf("unexpected extractor calls %+v", ex.calls)
	}
}

func TestAnalyzeFileVideoExtractFailure(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "movie.mkv"), "video")
	p := &Pipeline{Extractor: &fakeExtractor{err: video.ErrNoSubtitleStream}}

	_, err := p.AnalyzeFile(context.Background(), path)
	if !errors.Is(err, video.ErrNoSubtitleStream) {
		t.Fatalf("expected ErrNoSubtitleStream, got %v", err)
	}
}

func TestAnalyzeFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &Pipeline{}
	if _, err := p.AnalyzeFile(ctx, "whatever.srt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFindSubtitleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.srt"), sampleSRT)
	writeFile(t, filepath.Join(dir, "a.SRT"), sampleSRT)
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, "season", "c.srt"), sampleSRT)

	flat, err := FindSubtitleFiles(dir, false)
	if err != nil {
		t.Fatalf("FindSubtitleFiles returned error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.SRT"), filepath.Join(dir, "b.srt")}
	if !reflect.DeepEqual(flat, want) {
		t.Errorf("non-recursive = %v, want %v", flat, want)
	}

	all, err := FindSubtitleFiles(dir, true)
	if err != nil {
		t.Fatalf("FindSubtitleFiles returned error: %v", err)
	}
	want = append(want, filepath.Join(dir, "season", "c.srt"))
	if !reflect.DeepEqual(all, want) {
		t.Errorf("recursive = %v, want %v", all, want)
	}
}

func TestFindSubtitleFilesErrors(t *testing.T) {
	if _, err := FindSubtitleFiles(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("expected error for missing directory")
	}
	file := writeFile(t, filepath.Join(t.TempDir(), "x.srt"), sampleSRT)
	if _, err := FindSubtitleFiles(file, false); err == nil {
		t.Error("expected error for a file path")
	}
}

func TestAnalyzeFilesKeepsOrderAndCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, filepath.Join(dir, "one.srt"), sampleSRT),
		filepath.Join(dir, "missing.srt"),
		writeFile(t, filepath.Join(dir, "two.srt"), "1\n00:00:00,000 --> 00:00:01,000\nsolo\n"),
		writeFile(t, filepath.Join(dir, "three.srt"), sampleSRT),
	}

	core, observed := observer.New(zap.WarnLevel)
	p := &Pipeline{Logger: logging.New(zap.New(core))}

	reports, failures, err := p.AnalyzeFiles(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("AnalyzeFiles returned error: %v", err)
	}

	var names []string
	for _, r := range reports {
		names = append(names, r.Name)
	}
	if !reflect.DeepEqual(names, []string{"one.srt", "two.srt", "three.srt"}) {
		t.Errorf("unexpected order %v", names)
	}
	if reports[1].Report.Cues != 1 {
		t.Errorf("expected 1 cue in two.srt, got %d", reports[1].Report.Cues)
	}
	if len(failures) != 1 || failures[0].Path != paths[1] {
		t.Fatalf("unexpected failures %+v", failures)
	}
	if observed.FilterMessage("Skipping file").Len() != 1 {
		t.Errorf("expected a skip warning, got %v", observed.All())
	}
}

func TestAnalyzeFilesCancelled(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "one.srt"), sampleSRT)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Pipeline{}
	if _, _, err := p.AnalyzeFiles(ctx, []string{path}, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeFilesSkipsFilesWithoutCues(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, filepath.Join(dir, "empty.srt"), ""),
		writeFile(t, filepath.Join(dir, "garbage.srt"), "not a subtitle\nat all\n"),
		writeFile(t, filepath.Join(dir, "movie.srt"), sampleSRT),
	}

	core, observed := observer.New(zap.WarnLevel)
	p := &Pipeline{Logger: logging.New(zap.New(core))}

	reports, failures, err := p.AnalyzeFiles(context.Background(), paths, 3)
	if err != nil {
		t.Fatalf("AnalyzeFiles returned error: %v", err)
	}
	if len(reports) != 1 || reports[0].Name != "movie.srt" {
		t.Fatalf("expected only movie.srt to be compared, got %+v", reports)
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 skipped files, got %+v", failures)
	}
	for _, f := range failures {
		if !errors.Is(f.Err, ErrNoCues) {
			t.Errorf("expected ErrNoCues for %s, got %v", f.Path, f.Err)
		}
	}
	if observed.FilterMessage("Skipping file").Len() != 2 {
		t.Errorf("expected 2 skip warnings, got %v", observed.All())
	}

	summary := stats.Summarize(reports)
	if summary.ShortestFile.Name != "movie.srt" || summary.MinWordsPerSecond == 0 {
		t.Errorf("empty files leaked into the summary: %+v", summary)
	}
}
