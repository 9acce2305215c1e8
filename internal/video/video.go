package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/subaudit/internal/ffmpeg"
)

var ErrNoSubtitleStream = errors.New("no matching subtitle stream")

// defines interface for pulling subtitle tracks out of containers
type Extractor interface {
	// writes one subtitle stream of videoPath to outputPath as SRT
	ExtractSubtitles(
		ctx context.Context,
		videoPath, outputPath string,
		opts ExtractSubtitleOptions,
	) error
}

// holds options for subtitle extraction
type ExtractSubtitleOptions struct {
	Stream int // Index among the subtitle streams, 0 is the first
}

// default implementation using ffmpeg
type DefaultExtractor struct {
	ffmpegPath string
}

// NewExtractor resolves the ffmpeg binary up front so a missing install
// fails before any work starts.
func NewExtractor(configuredPath string) (*DefaultExtractor, error) {
	path, err := ffmpegbin.FFmpegPath(configuredPath)
	if err != nil {
		return nil, err
	}
	return &DefaultExtractor{ffmpegPath: path}, nil
}

// extracts a subtitle stream from a video file
func (e *DefaultExtractor) ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractSubtitleOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if opts.Stream < 0 {
		return fmt.Errorf("subtitle stream must not be negative, got %d", opts.Stream)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var stderr bytes.Buffer
	cmd := ffmpeg.Input(videoPath).
		Output(outputPath, subtitleArgs(opts)).
		OverWriteOutput().
		SetFfmpegPath(e.ffmpegPath).
		WithErrorOutput(&stderr).
		Compile()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	case err := <-done:
		if err != nil {
			if isMissingStream(stderr.String()) {
				return fmt.Errorf("%w: stream %d in %s", ErrNoSubtitleStream, opts.Stream, videoPath)
			}
			return fmt.Errorf("ffmpeg subtitle extraction failed: %w", err)
		}
	}

	return nil
}

func subtitleArgs(opts ExtractSubtitleOptions) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", opts.Stream), // Subtitle stream only
		"c:s": "srt",                              // Convert to SubRip
		"y":   "",                                 // Overwrite output
	}
}

func isMissingStream(stderr string) bool {
	return strings.Contains(stderr, "matches no streams") ||
		strings.Contains(stderr, "Subtitle encoding currently only possible from text to text")
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".ts":   true,
	}
	return videoExts[ext]
}
