package subtitle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subaudit/internal/charset"
)

var ErrUnsupportedInput = errors.New("unsupported subtitle format")

// options for loading a subtitle file from disk
type OpenOptions struct {
	// forces the charset label, empty means detect
	Encoding string
}

// Open reads, decodes and parses an SRT file.
func Open(path string, opts OpenOptions) (*File, error) {
	if !IsSubtitleFile(path) {
		return nil, fmt.Errorf(
			"%w: %s",
			ErrUnsupportedInput,
			filepath.Ext(path),
		)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	return Load(path, raw, opts)
}

// Load decodes and parses raw bytes that were read from path.
func Load(path string, raw []byte, opts OpenOptions) (*File, error) {
	decoded, err := charset.Decode(raw, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &File{
		Path:       path,
		Encoding:   decoded.Encoding,
		Confidence: decoded.Confidence,
		Cues:       SRTParser{}.Parse(decoded.Text),
	}, nil
}

// reports whether path has an SRT extension
func IsSubtitleFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), "."+string(FormatSRT))
}
