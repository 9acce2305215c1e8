package stats

import (
	"sort"
	"time"

	"github.com/mgpai22/subaudit/internal/subtitle"
)

// half-open time range [Start, End)
type Interval struct {
	Start time.Duration
	End   time.Duration
}

func (i Interval) Duration() time.Duration {
	return i.End - i.Start
}

func intervalsOf(cues []subtitle.Cue) []Interval {
	out := make([]Interval, len(cues))
	for i, cue := range cues {
		out[i] = Interval{Start: cue.Start, End: cue.End}
	}
	return out
}

// MergeIntervals returns the union of ranges as disjoint intervals ordered
// by start. Ranges that touch are coalesced. The input is not modified.
func MergeIntervals(ranges []Interval) []Interval {
	if len(ranges) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// TrueDisplayTime is the time during which at least one range is active,
// counting overlapping time once.
func TrueDisplayTime(ranges []Interval) time.Duration {
	var total time.Duration
	for _, r := range MergeIntervals(ranges) {
		total += r.Duration()
	}
	return total
}
