package subtitle

import (
	"time"
)

// represents single subtitle cue as declared in the source file
type Cue struct {
	// sequence number as written in the file, 0 when unparseable
	Index      int
	Start      time.Duration
	End        time.Duration
	RawLines   []string
	CleanLines []string
}

// end minus start, negative for malformed cues
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

// represents a parsed subtitle file
type File struct {
	Path     string
	Encoding string
	// confidence reported by the charset detector, 100 when forced
	Confidence int
	Cues       []Cue
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
)

// interface for parsing decoded subtitle text
type Parser interface {
	Parse(content string) []Cue
}

func newCue(index int, start, end time.Duration, raw []string) Cue {
	lines := make([]string, len(raw))
	copy(lines, raw)
	return Cue{
		Index:      index,
		Start:      start,
		End:        end,
		RawLines:   lines,
		CleanLines: CleanLines(lines),
	}
}
