package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/subaudit/internal/logging"
	"github.com/mgpai22/subaudit/internal/stats"
	"github.com/mgpai22/subaudit/internal/subtitle"
	"github.com/mgpai22/subaudit/internal/video"
)

// Pipeline runs parse and analyze for one file at a time. It holds no
// state between files and is safe for concurrent use.
type Pipeline struct {
	Stats    stats.Config
	Encoding string
	// used only for video inputs, may be nil
	Extractor video.Extractor
	Stream    int
	Logger    *logging.Logger
}

func (p *Pipeline) log() *logging.Logger {
	if p.Logger == nil {
		return logging.NewNop()
	}
	return p.Logger
}

// AnalyzeFile parses path and derives its report. Video containers have
// their subtitle stream extracted to a temporary SRT first.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (stats.FileReport, error) {
	if err := ctx.Err(); err != nil {
		return stats.FileReport{}, err
	}
	logger := p.log().ForFile(path)

	srtPath := path
	if video.IsVideoFile(path) {
		extracted, cleanup, err := p.extract(ctx, path)
		if err != nil {
			return stats.FileReport{}, err
		}
		defer cleanup()
		srtPath = extracted
	}

	file, err := subtitle.Open(srtPath, subtitle.OpenOptions{Encoding: p.Encoding})
	if err != nil {
		return stats.FileReport{}, err
	}

	logger.Debugw("Parsed subtitle file",
		"cues", len(file.Cues),
		"encoding", file.Encoding,
		"confidence", file.Confidence,
	)
	if len(file.Cues) == 0 {
		logger.Warnw("No cues found")
	}

	rep := stats.Analyze(file.Cues, p.Stats)
	if len(rep.Overlaps) > 0 {
		logger.Debugw("Overlapping cues detected", "count", len(rep.Overlaps))
	}

	return stats.FileReport{
		Path:     path,
		Name:     filepath.Base(path),
		Encoding: file.Encoding,
		Report:   rep,
	}, nil
}

func (p *Pipeline) extract(ctx context.Context, path string) (string, func(), error) {
	if p.Extractor == nil {
		return "", nil, fmt.Errorf("%w: %s (no ffmpeg extractor configured)", subtitle.ErrUnsupportedInput, filepath.Ext(path))
	}

	tempDir, err := os.MkdirTemp("", "subaudit-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tempDir) }

	out := filepath.Join(tempDir, "stream.srt")
	p.log().Infow("Extracting subtitle stream",
		"video", path,
		"stream", p.Stream,
	)
	if err := p.Extractor.ExtractSubtitles(
		ctx,
		path,
		out,
		video.ExtractSubtitleOptions{Stream: p.Stream},
	); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to extract subtitles: %w", err)
	}
	return out, cleanup, nil
}
