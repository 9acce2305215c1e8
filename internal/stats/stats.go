package stats

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mgpai22/subaudit/internal/subtitle"
)

// Analyze derives a Report from cues in file order. It never fails; an
// empty slice yields a zero report with empty lists.
func Analyze(cues []subtitle.Cue, cfg Config) Report {
	cfg = cfg.withDefaults()

	report := Report{
		LongestLines:      []LineRef{},
		LongLineThreshold: cfg.LongLineThreshold,
		LongLines:         []LongLine{},
		ShortDurationMS:   millis(cfg.ShortDuration),
		ShortCues:         []ShortCue{},
		Overlaps:          []Overlap{},
	}
	if len(cues) == 0 {
		return report
	}

	var (
		sum           time.Duration
		minDur        = cues[0].Duration()
		maxDur        = cues[0].Duration()
		seenLongIndex = make(map[int]bool)
	)

	for pos, cue := range cues {
		d := cue.Duration()
		sum += d
		minDur = min(minDur, d)
		maxDur = max(maxDur, d)

		switch n := len(cue.CleanLines); {
		case n == 1:
			report.SingleLineCues++
		case n == 2:
			report.DoubleLineCues++
		case n == 3:
			report.TripleLineCues++
		case n >= 4:
			report.QuadPlusLineCues++
		}

		longest := 0
		for _, line := range cue.CleanLines {
			length := utf8.RuneCountInString(line)
			report.Words += len(strings.Fields(line))
			report.Characters += length
			longest = max(longest, length)

			switch {
			case length > report.MaxLineLength:
				report.MaxLineLength = length
				report.LongestLines = report.LongestLines[:0]
				fallthrough
			case length == report.MaxLineLength:
				report.LongestLines = append(report.LongestLines, LineRef{
					Index:    cue.Index,
					Position: pos,
					Text:     line,
					Length:   length,
				})
			}
		}

		if longest > cfg.LongLineThreshold && !seenLongIndex[cue.Index] {
			seenLongIndex[cue.Index] = true
			report.LongLines = append(report.LongLines, LongLine{
				Index:     cue.Index,
				Lines:     cleanCopy(cue),
				MaxLength: longest,
			})
		}

		if d < cfg.ShortDuration {
			report.ShortCues = append(report.ShortCues, ShortCue{
				CueRef:     cueRef(pos, cue),
				DurationMS: millis(d),
			})
		}
	}

	first, last := cues[0], cues[len(cues)-1]
	span := last.End - first.Start
	trueDisplay := TrueDisplayTime(intervalsOf(cues))

	report.Cues = len(cues)
	report.AvgWordsPerCue = float64(report.Words) / float64(len(cues))
	report.AvgCharsPerCue = float64(report.Characters) / float64(len(cues))

	report.FirstStartMS = millis(first.Start)
	report.LastEndMS = millis(last.End)
	report.SpanMS = millis(span)
	report.MinDurationMS = millis(minDur)
	report.MaxDurationMS = millis(maxDur)
	report.AvgDurationMS = float64(sum) / float64(len(cues)) / float64(time.Millisecond)

	report.DurationSumMS = millis(sum)
	report.TrueDisplayMS = millis(trueDisplay)
	report.SilenceMS = millis(span - trueDisplay)
	if span > 0 {
		report.DisplayPercentage = float64(trueDisplay) / float64(span) * 100
	}

	if seconds := trueDisplay.Seconds(); seconds > 0 {
		report.WordsPerSecond = float64(report.Words) / seconds
		report.CharsPerSecond = float64(report.Characters) / seconds
	}

	report.Overlaps = FindOverlaps(cues)

	return report
}
