package subtitle

import (
	"strconv"
	"strings"
	"time"
)

const (
	timingSeparator = " --> "
	// length of HH:MM:SS,mmm
	timestampLen = 12
)

// SRTParser implements Parser for SubRip text
type SRTParser struct{}

func (SRTParser) Parse(content string) []Cue {
	return Parse(content)
}

// Parse splits decoded SRT text into cues in file order. Blocks that are
// too short or whose second line is not a timing line are skipped.
func Parse(content string) []Cue {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSpace(content)

	cues := []Cue{}
	if content == "" {
		return cues
	}

	for _, block := range strings.Split(content, "\n\n") {
		cue, ok := parseSRTBlock(block)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}
	return cues
}

func parseSRTBlock(block string) (Cue, bool) {
	lines := strings.Split(strings.Trim(block, "\n"), "\n")
	if len(lines) < 2 {
		return Cue{}, false
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		index = 0
	}

	start, end, ok := parseTimingLine(lines[1])
	if !ok {
		return Cue{}, false
	}

	return newCue(index, start, end, lines[2:]), true
}

// only the leading stamp after the arrow is read, so trailing position
// data or stray characters do not reject the line
func parseTimingLine(line string) (start, end time.Duration, ok bool) {
	left, right, found := strings.Cut(strings.TrimSpace(line), timingSeparator)
	if !found {
		return 0, 0, false
	}
	if len(right) > timestampLen {
		right = right[:timestampLen]
	}

	startTime, err := DecodeTimestamp(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, false
	}
	endTime, err := DecodeTimestamp(right)
	if err != nil {
		return 0, 0, false
	}
	return startTime, endTime, true
}
