package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mgpai22/subaudit/internal/stats"
	"github.com/mgpai22/subaudit/internal/subtitle"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func (r *Renderer) paint(s string, colors ...text.Color) string {
	if !r.opts.Color {
		return s
	}
	return text.Colors(colors).Sprint(s)
}

func (r *Renderer) renderTable(
	title string,
	headers []string,
	rows [][]string,
	aligns []columnAlignment,
) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(r.paint(title, text.FgYellow, text.Bold))
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				tr[i] = row[i]
			} else {
				tr[i] = ""
			}
		}
		tw.AppendRow(tr)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render() + "\n"
}

func stamp(ms int64) string {
	return subtitle.EncodeTimestamp(time.Duration(ms) * time.Millisecond)
}

func seconds(ms float64) string {
	return fmt.Sprintf("%.3fs", ms/1000)
}

func (r *Renderer) fileTables(fr stats.FileReport) string {
	rep := fr.Report
	var sb strings.Builder

	value := func(s string) string { return r.paint(s, text.FgBlue) }
	rows := [][]string{
		{"File", fr.Path},
		{"Encoding", fr.Encoding},
		{"Cues", value(fmt.Sprintf("%d", rep.Cues))},
		{"Subtitle starts at", value(stamp(rep.FirstStartMS))},
		{"Subtitle ends at", value(stamp(rep.LastEndMS))},
		{"Total span", value(stamp(rep.SpanMS))},
		{"True display time", value(stamp(rep.TrueDisplayMS))},
		{"Summed cue durations", value(stamp(rep.DurationSumMS))},
		{"Silence time", value(stamp(rep.SilenceMS))},
		{"Display percentage", value(fmt.Sprintf("%.2f%%", rep.DisplayPercentage))},
		{"Words", value(fmt.Sprintf("%d", rep.Words))},
		{"Characters", value(fmt.Sprintf("%d", rep.Characters))},
		{"Average words per cue", value(fmt.Sprintf("%.2f", rep.AvgWordsPerCue))},
		{"Average characters per cue", value(fmt.Sprintf("%.2f", rep.AvgCharsPerCue))},
		{"Average cue duration", value(seconds(rep.AvgDurationMS))},
		{"Shortest cue duration", value(seconds(float64(rep.MinDurationMS)))},
		{"Longest cue duration", value(seconds(float64(rep.MaxDurationMS)))},
		{"Reading rate (words/sec)", value(fmt.Sprintf("%.2f", rep.WordsPerSecond))},
		{"Reading rate (chars/sec)", value(fmt.Sprintf("%.2f", rep.CharsPerSecond))},
		{"Maximum characters in a line", value(fmt.Sprintf("%d", rep.MaxLineLength))},
		{"Single-line cues", fmt.Sprintf("%d", rep.SingleLineCues)},
		{"Double-line cues", fmt.Sprintf("%d", rep.DoubleLineCues)},
		{"Triple-line cues", fmt.Sprintf("%d", rep.TripleLineCues)},
		{"Cues with 4+ lines", fmt.Sprintf("%d", rep.QuadPlusLineCues)},
		{fmt.Sprintf("Cues with lines over %d chars", rep.LongLineThreshold), fmt.Sprintf("%d", len(rep.LongLines))},
		{fmt.Sprintf("Cues shorter than %dms", rep.ShortDurationMS), fmt.Sprintf("%d", len(rep.ShortCues))},
		{"Overlaps", r.overlapCount(len(rep.Overlaps))},
	}
	sb.WriteString(r.renderTable(
		"SUBTITLE STATISTICS",
		[]string{"Metric", "Value"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))

	if len(rep.LongestLines) > 0 {
		longest := make([][]string, 0, len(rep.LongestLines))
		for _, l := range rep.LongestLines {
			longest = append(longest, []string{
				fmt.Sprintf("%d", l.Index),
				l.Text,
				fmt.Sprintf("%d", l.Length),
			})
		}
		sb.WriteString(r.renderTable(
			"LONGEST LINES",
			[]string{"Cue", "Text", "Chars"},
			longest,
			[]columnAlignment{alignRight, alignLeft, alignRight},
		))
	}

	if !r.opts.Details {
		return sb.String()
	}

	if len(rep.LongLines) > 0 {
		rows := make([][]string, 0, len(rep.LongLines))
		for _, l := range rep.LongLines {
			rows = append(rows, []string{
				r.paint(fmt.Sprintf("(%d)", l.Index), text.FgYellow),
				r.linesWithLength(l.Lines, rep.LongLineThreshold),
			})
		}
		sb.WriteString(r.renderTable(
			fmt.Sprintf("LINES WITH MORE THAN %d CHARACTERS", rep.LongLineThreshold),
			[]string{"Cue", "Text"},
			rows,
			nil,
		))
	}

	if len(rep.ShortCues) > 0 {
		rows := make([][]string, 0, len(rep.ShortCues))
		for _, c := range rep.ShortCues {
			rows = append(rows, []string{
				fmt.Sprintf("%d", c.Index),
				stamp(c.StartMS),
				stamp(c.EndMS),
				seconds(float64(c.DurationMS)),
				strings.Join(c.Lines, "\n"),
			})
		}
		sb.WriteString(r.renderTable(
			fmt.Sprintf("CUES SHORTER THAN %s", seconds(float64(rep.ShortDurationMS))),
			[]string{"Cue", "Start", "End", "Duration", "Text"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
		))
	}

	if len(rep.Overlaps) > 0 {
		rows := make([][]string, 0, len(rep.Overlaps))
		for _, o := range rep.Overlaps {
			rows = append(rows, []string{
				r.paint(fmt.Sprintf("%d / %d", o.First.Index, o.Second.Index), text.FgRed),
				stamp(o.StartMS),
				stamp(o.EndMS),
				seconds(float64(o.DurationMS)),
				strings.Join(o.First.Lines, "\n") + "\n--\n" + strings.Join(o.Second.Lines, "\n"),
			})
		}
		sb.WriteString(r.renderTable(
			"OVERLAPPING CUES",
			[]string{"Cues", "Start", "End", "Duration", "Text"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		))
	}

	return sb.String()
}

func (r *Renderer) overlapCount(n int) string {
	if n == 0 {
		return r.paint("0", text.FgGreen)
	}
	return r.paint(fmt.Sprintf("%d", n), text.FgRed)
}

func (r *Renderer) linesWithLength(lines []string, threshold int) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		n := len([]rune(line))
		length := fmt.Sprintf("(%d)", n)
		if n > threshold {
			length = r.paint(length, text.FgGreen)
		}
		out = append(out, line+" "+length)
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) batchTables(files []stats.FileReport, summary stats.Summary) string {
	var sb strings.Builder

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rep := f.Report
		rows = append(rows, []string{
			f.Name,
			fmt.Sprintf("%d", rep.Cues),
			stamp(rep.SpanMS),
			stamp(rep.TrueDisplayMS),
			stamp(rep.SilenceMS),
			fmt.Sprintf("%.2f", rep.DisplayPercentage),
			fmt.Sprintf("%.2f", rep.WordsPerSecond),
			r.overlapCount(len(rep.Overlaps)),
			f.Encoding,
		})
	}
	sb.WriteString(r.renderTable(
		"FILES",
		[]string{"File", "Cues", "Span", "Display", "Silence", "Display %", "Words/s", "Overlaps", "Encoding"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))

	twoCols := []columnAlignment{alignLeft, alignRight}
	num := func(v float64) string { return fmt.Sprintf("%.2f", v) }

	sb.WriteString(r.renderTable("Basic File Statistics", []string{"Metric", "Value"}, [][]string{
		{"Total files analyzed", fmt.Sprintf("%d", summary.Files)},
		{"Total combined cues", fmt.Sprintf("%d", summary.TotalCues)},
		{"Average cues per file", num(summary.AvgCuesPerFile)},
	}, twoCols))

	sb.WriteString(r.renderTable("Timing Analysis", []string{"Metric", "Value"}, [][]string{
		{"Average display time %", num(summary.AvgDisplayPercentage)},
		{"Average cue duration (seconds)", num(summary.AvgCueDurationMS / 1000)},
		{"Shortest average cue duration (seconds)", num(summary.MinAvgCueDurationMS / 1000)},
		{"Longest average cue duration (seconds)", num(summary.MaxAvgCueDurationMS / 1000)},
	}, twoCols))

	sb.WriteString(r.renderTable("Reading Speed Analysis", []string{"Metric", "Value"}, [][]string{
		{"Average words per second", num(summary.AvgWordsPerSecond)},
		{"Fastest reading speed", num(summary.MaxWordsPerSecond)},
		{"Slowest reading speed", num(summary.MinWordsPerSecond)},
	}, twoCols))

	sb.WriteString(r.renderTable("Text Structure Analysis", []string{"Metric", "Value"}, [][]string{
		{"Average words per cue", num(summary.AvgWordsPerCue)},
		{"Average characters per cue", num(summary.AvgCharsPerCue)},
		{"Single-line cues %", num(summary.SingleLinePercent)},
		{"Double-line cues %", num(summary.DoubleLinePercent)},
		{"Triple+ line cues %", num(summary.TriplePlusPercent)},
	}, twoCols))

	sb.WriteString(r.renderTable("Quality Metrics", []string{"Metric", "Value"}, [][]string{
		{"Total overlaps found", fmt.Sprintf("%d", summary.TotalOverlaps)},
		{"Average overlaps per file", num(summary.AvgOverlapsPerFile)},
		{"Files with overlaps", fmt.Sprintf("%d", summary.FilesWithOverlaps)},
		{"Files with zero overlaps", fmt.Sprintf("%d", summary.FilesWithoutOverlaps)},
	}, twoCols))

	if summary.Files > 0 {
		blue := func(s string) string { return r.paint(s, text.FgBlue) }
		sb.WriteString(r.renderTable("Notable Files", []string{"Ranking", "File"}, [][]string{
			{"Longest file", fmt.Sprintf("%s %s", summary.LongestFile.Name, blue(fmt.Sprintf("(%d cues)", int(summary.LongestFile.Value))))},
			{"Shortest file", fmt.Sprintf("%s %s", summary.ShortestFile.Name, blue(fmt.Sprintf("(%d cues)", int(summary.ShortestFile.Value))))},
			{"Fastest reading speed", fmt.Sprintf("%s %s", summary.FastestFile.Name, blue(fmt.Sprintf("(%.1f w/s)", summary.FastestFile.Value)))},
			{"Slowest reading speed", fmt.Sprintf("%s %s", summary.SlowestFile.Name, blue(fmt.Sprintf("(%.1f w/s)", summary.SlowestFile.Value)))},
			{"Most overlaps", fmt.Sprintf("%s %s", summary.MostOverlaps.Name, blue(fmt.Sprintf("(%d overlaps)", int(summary.MostOverlaps.Value))))},
		}, nil))
	}

	encodings := make([][]string, 0, len(summary.Encodings))
	for _, e := range summary.Encodings {
		encodings = append(encodings, []string{e.Encoding, fmt.Sprintf("%d", e.Count)})
	}
	sb.WriteString(r.renderTable("Encoding Distribution", []string{"Encoding", "Count"}, encodings, twoCols))

	return sb.String()
}
