package stats

import "sort"

// Report for one analyzed file
type FileReport struct {
	Path     string `json:"path" yaml:"path"`
	Name     string `json:"name" yaml:"name"`
	Encoding string `json:"encoding" yaml:"encoding"`
	Report   Report `json:"report" yaml:"report"`
}

// file name and the metric it was ranked by
type Ranking struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

type EncodingCount struct {
	Encoding string `json:"encoding" yaml:"encoding"`
	Count    int    `json:"count" yaml:"count"`
}

// comparative statistics across several files
type Summary struct {
	Files          int     `json:"files" yaml:"files"`
	TotalCues      int     `json:"total_cues" yaml:"total_cues"`
	AvgCuesPerFile float64 `json:"avg_cues_per_file" yaml:"avg_cues_per_file"`

	AvgDisplayPercentage float64 `json:"avg_display_percentage" yaml:"avg_display_percentage"`
	AvgCueDurationMS     float64 `json:"avg_cue_duration_ms" yaml:"avg_cue_duration_ms"`
	MinAvgCueDurationMS  float64 `json:"min_avg_cue_duration_ms" yaml:"min_avg_cue_duration_ms"`
	MaxAvgCueDurationMS  float64 `json:"max_avg_cue_duration_ms" yaml:"max_avg_cue_duration_ms"`

	AvgWordsPerSecond float64 `json:"avg_words_per_second" yaml:"avg_words_per_second"`
	MaxWordsPerSecond float64 `json:"max_words_per_second" yaml:"max_words_per_second"`
	MinWordsPerSecond float64 `json:"min_words_per_second" yaml:"min_words_per_second"`

	AvgWordsPerCue    float64 `json:"avg_words_per_cue" yaml:"avg_words_per_cue"`
	AvgCharsPerCue    float64 `json:"avg_chars_per_cue" yaml:"avg_chars_per_cue"`
	SingleLinePercent float64 `json:"single_line_percent" yaml:"single_line_percent"`
	DoubleLinePercent float64 `json:"double_line_percent" yaml:"double_line_percent"`
	TriplePlusPercent float64 `json:"triple_plus_percent" yaml:"triple_plus_percent"`

	TotalOverlaps        int     `json:"total_overlaps" yaml:"total_overlaps"`
	AvgOverlapsPerFile   float64 `json:"avg_overlaps_per_file" yaml:"avg_overlaps_per_file"`
	FilesWithOverlaps    int     `json:"files_with_overlaps" yaml:"files_with_overlaps"`
	FilesWithoutOverlaps int     `json:"files_without_overlaps" yaml:"files_without_overlaps"`

	LongestFile  Ranking `json:"longest_file" yaml:"longest_file"`
	ShortestFile Ranking `json:"shortest_file" yaml:"shortest_file"`
	FastestFile  Ranking `json:"fastest_file" yaml:"fastest_file"`
	SlowestFile  Ranking `json:"slowest_file" yaml:"slowest_file"`
	MostOverlaps Ranking `json:"most_overlaps" yaml:"most_overlaps"`

	Encodings []EncodingCount `json:"encodings" yaml:"encodings"`
}

// Summarize aggregates per-file reports. Ties in rankings go to the file
// that comes first.
func Summarize(files []FileReport) Summary {
	summary := Summary{
		Files:     len(files),
		Encodings: []EncodingCount{},
	}
	if len(files) == 0 {
		return summary
	}

	n := float64(len(files))
	var single, double, triplePlus int
	encodings := make(map[string]int)

	first := files[0].Report
	summary.MinAvgCueDurationMS = first.AvgDurationMS
	summary.MaxAvgCueDurationMS = first.AvgDurationMS
	summary.MinWordsPerSecond = first.WordsPerSecond
	summary.MaxWordsPerSecond = first.WordsPerSecond

	longest, shortest, fastest, slowest, mostOverlaps := 0, 0, 0, 0, 0

	for i, f := range files {
		r := f.Report
		summary.TotalCues += r.Cues
		summary.AvgDisplayPercentage += r.DisplayPercentage / n
		summary.AvgCueDurationMS += r.AvgDurationMS / n
		summary.AvgWordsPerSecond += r.WordsPerSecond / n
		summary.AvgWordsPerCue += r.AvgWordsPerCue / n
		summary.AvgCharsPerCue += r.AvgCharsPerCue / n
		summary.TotalOverlaps += len(r.Overlaps)

		summary.MinAvgCueDurationMS = min(summary.MinAvgCueDurationMS, r.AvgDurationMS)
		summary.MaxAvgCueDurationMS = max(summary.MaxAvgCueDurationMS, r.AvgDurationMS)
		summary.MinWordsPerSecond = min(summary.MinWordsPerSecond, r.WordsPerSecond)
		summary.MaxWordsPerSecond = max(summary.MaxWordsPerSecond, r.WordsPerSecond)

		single += r.SingleLineCues
		double += r.DoubleLineCues
		triplePlus += r.TripleLineCues + r.QuadPlusLineCues

		if len(r.Overlaps) > 0 {
			summary.FilesWithOverlaps++
		} else {
			summary.FilesWithoutOverlaps++
		}
		encodings[f.Encoding]++

		if r.Cues > files[longest].Report.Cues {
			longest = i
		}
		if r.Cues < files[shortest].Report.Cues {
			shortest = i
		}
		if r.WordsPerSecond > files[fastest].Report.WordsPerSecond {
			fastest = i
		}
		if r.WordsPerSecond < files[slowest].Report.WordsPerSecond {
			slowest = i
		}
		if len(r.Overlaps) > len(files[mostOverlaps].Report.Overlaps) {
			mostOverlaps = i
		}
	}

	summary.AvgCuesPerFile = float64(summary.TotalCues) / n
	summary.AvgOverlapsPerFile = float64(summary.TotalOverlaps) / n
	if summary.TotalCues > 0 {
		total := float64(summary.TotalCues)
		summary.SingleLinePercent = float64(single) / total * 100
		summary.DoubleLinePercent = float64(double) / total * 100
		summary.TriplePlusPercent = float64(triplePlus) / total * 100
	}

	summary.LongestFile = Ranking{files[longest].Name, float64(files[longest].Report.Cues)}
	summary.ShortestFile = Ranking{files[shortest].Name, float64(files[shortest].Report.Cues)}
	summary.FastestFile = Ranking{files[fastest].Name, files[fastest].Report.WordsPerSecond}
	summary.SlowestFile = Ranking{files[slowest].Name, files[slowest].Report.WordsPerSecond}
	summary.MostOverlaps = Ranking{files[mostOverlaps].Name, float64(len(files[mostOverlaps].Report.Overlaps))}

	for enc, count := range encodings {
		summary.Encodings = append(summary.Encodings, EncodingCount{Encoding: enc, Count: count})
	}
	sort.Slice(summary.Encodings, func(i, j int) bool {
		a, b := summary.Encodings[i], summary.Encodings[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Encoding < b.Encoding
	})

	return summary
}
