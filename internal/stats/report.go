package stats

import "time"

// Report holds every statistic derived from one file's cues. Durations are
// whole milliseconds so the record serializes without host specific types.
type Report struct {
	Cues       int `json:"cues" yaml:"cues"`
	Words      int `json:"words" yaml:"words"`
	Characters int `json:"characters" yaml:"characters"`

	// cues by number of non-empty lines after cleaning
	SingleLineCues   int `json:"single_line_cues" yaml:"single_line_cues"`
	DoubleLineCues   int `json:"double_line_cues" yaml:"double_line_cues"`
	TripleLineCues   int `json:"triple_line_cues" yaml:"triple_line_cues"`
	QuadPlusLineCues int `json:"quad_plus_line_cues" yaml:"quad_plus_line_cues"`

	AvgWordsPerCue float64 `json:"avg_words_per_cue" yaml:"avg_words_per_cue"`
	AvgCharsPerCue float64 `json:"avg_chars_per_cue" yaml:"avg_chars_per_cue"`

	FirstStartMS  int64   `json:"first_start_ms" yaml:"first_start_ms"`
	LastEndMS     int64   `json:"last_end_ms" yaml:"last_end_ms"`
	SpanMS        int64   `json:"span_ms" yaml:"span_ms"`
	MinDurationMS int64   `json:"min_duration_ms" yaml:"min_duration_ms"`
	AvgDurationMS float64 `json:"avg_duration_ms" yaml:"avg_duration_ms"`
	MaxDurationMS int64   `json:"max_duration_ms" yaml:"max_duration_ms"`

	// plain sum of cue durations, overlapping time counted twice
	DurationSumMS     int64   `json:"duration_sum_ms" yaml:"duration_sum_ms"`
	TrueDisplayMS     int64   `json:"true_display_ms" yaml:"true_display_ms"`
	SilenceMS         int64   `json:"silence_ms" yaml:"silence_ms"`
	DisplayPercentage float64 `json:"display_percentage" yaml:"display_percentage"`

	WordsPerSecond float64 `json:"words_per_second" yaml:"words_per_second"`
	CharsPerSecond float64 `json:"chars_per_second" yaml:"chars_per_second"`

	MaxLineLength int       `json:"max_line_length" yaml:"max_line_length"`
	LongestLines  []LineRef `json:"longest_lines" yaml:"longest_lines"`

	LongLineThreshold int        `json:"long_line_threshold" yaml:"long_line_threshold"`
	LongLines         []LongLine `json:"long_lines" yaml:"long_lines"`

	ShortDurationMS int64      `json:"short_duration_ms" yaml:"short_duration_ms"`
	ShortCues       []ShortCue `json:"short_cues" yaml:"short_cues"`

	Overlaps []Overlap `json:"overlaps" yaml:"overlaps"`
}

// identifies a cue by declared sequence number and file position
type CueRef struct {
	Index    int      `json:"index" yaml:"index"`
	Position int      `json:"position" yaml:"position"`
	StartMS  int64    `json:"start_ms" yaml:"start_ms"`
	EndMS    int64    `json:"end_ms" yaml:"end_ms"`
	Lines    []string `json:"lines" yaml:"lines"`
}

// intersection of two file-adjacent cues
type Overlap struct {
	First      CueRef `json:"first" yaml:"first"`
	Second     CueRef `json:"second" yaml:"second"`
	StartMS    int64  `json:"start_ms" yaml:"start_ms"`
	EndMS      int64  `json:"end_ms" yaml:"end_ms"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms"`
}

// one cleaned line of the maximum observed length
type LineRef struct {
	Index    int    `json:"index" yaml:"index"`
	Position int    `json:"position" yaml:"position"`
	Text     string `json:"text" yaml:"text"`
	Length   int    `json:"length" yaml:"length"`
}

// cue with at least one line over the long line threshold
type LongLine struct {
	Index     int      `json:"index" yaml:"index"`
	Lines     []string `json:"lines" yaml:"lines"`
	MaxLength int      `json:"max_length" yaml:"max_length"`
}

// cue shown for less than the short duration threshold
type ShortCue struct {
	CueRef     `json:",inline" yaml:",inline"`
	DurationMS int64 `json:"duration_ms" yaml:"duration_ms"`
}

func (r Report) Span() time.Duration {
	return time.Duration(r.SpanMS) * time.Millisecond
}

func (r Report) TrueDisplay() time.Duration {
	return time.Duration(r.TrueDisplayMS) * time.Millisecond
}

func (r Report) Silence() time.Duration {
	return time.Duration(r.SilenceMS) * time.Millisecond
}

func (r Report) HasOverlaps() bool {
	return len(r.Overlaps) > 0
}
