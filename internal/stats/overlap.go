package stats

import (
	"time"

	"github.com/mgpai22/subaudit/internal/subtitle"
)

// FindOverlaps compares each cue with the one that follows it in file
// order. Cues further apart are not compared.
func FindOverlaps(cues []subtitle.Cue) []Overlap {
	overlaps := []Overlap{}
	for i := 0; i+1 < len(cues); i++ {
		cur, next := cues[i], cues[i+1]
		if cur.End <= next.Start {
			continue
		}

		start := next.Start
		end := min(cur.End, next.End)
		overlaps = append(overlaps, Overlap{
			First:      cueRef(i, cur),
			Second:     cueRef(i+1, next),
			StartMS:    millis(start),
			EndMS:      millis(end),
			DurationMS: millis(end - start),
		})
	}
	return overlaps
}

func cueRef(position int, cue subtitle.Cue) CueRef {
	return CueRef{
		Index:    cue.Index,
		Position: position,
		StartMS:  millis(cue.Start),
		EndMS:    millis(cue.End),
		Lines:    cleanCopy(cue),
	}
}

func cleanCopy(cue subtitle.Cue) []string {
	lines := make([]string, len(cue.CleanLines))
	copy(lines, cue.CleanLines)
	return lines
}

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
