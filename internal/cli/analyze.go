package cli

import (
	"fmt"
	"os"

	"github.com/mgpai22/subaudit/internal/audit"
	"github.com/mgpai22/subaudit/internal/report"
	"github.com/mgpai22/subaudit/internal/subtitle"
	"github.com/mgpai22/subaudit/internal/video"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [subtitle_or_video_file]",
	Short: "Report timing and readability statistics for one subtitle file",
	Long: `Parse an SRT file and report cue counts, reading speed, true display
time, silence, long lines, short cues and overlapping cues.

Video files (mkv, mp4, ...) are accepted when ffmpeg is available: the
selected subtitle stream is extracted and analyzed as SRT.

Examples:
  subaudit analyze movie.srt
  subaudit analyze movie.srt --details --long-line 40
  subaudit analyze movie.srt -f json -o report.json
  subaudit analyze movie.mkv --stream 1`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().
		BoolP("details", "d", false, "List every flagged cue (long lines, short cues, overlaps)")
	analyzeCmd.Flags().
		IntP("stream", "s", -1, "Subtitle stream index for video files (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	ctx := cmd.Context()

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if !subtitle.IsSubtitleFile(inputPath) && !video.IsVideoFile(inputPath) {
		return fmt.Errorf("unsupported file type %q: expected .srt or a video file", inputPath)
	}

	conf := currentConfig()
	log := currentLogger()

	opts, err := resolveOptions(cmd, conf)
	if err != nil {
		return err
	}

	pipeline := &audit.Pipeline{
		Stats:    opts.stats,
		Encoding: opts.encoding,
		Stream:   conf.FFmpeg.Stream,
		Logger:   log,
	}
	if stream, _ := cmd.Flags().GetInt("stream"); stream >= 0 {
		pipeline.Stream = stream
	}
	if video.IsVideoFile(inputPath) {
		extractor, err := video.NewExtractor(conf.FFmpeg.Path)
		if err != nil {
			return err
		}
		pipeline.Extractor = extractor
	}

	log.Infow("Analyzing subtitle file",
		"input", inputPath,
		"long_line_threshold", opts.stats.LongLineThreshold,
		"short_duration", opts.stats.ShortDuration.String(),
	)

	fileReport, err := pipeline.AnalyzeFile(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out, closeOut, err := openOutput(&opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	renderErr := report.NewRenderer(opts.render).RenderFile(out, fileReport)
	if err := closeOut(); err != nil && renderErr == nil {
		renderErr = fmt.Errorf("failed to close output file: %w", err)
	}
	if renderErr != nil {
		return renderErr
	}

	if opts.output != "" {
		log.Infow("Report written", "output", opts.output)
	}
	return nil
}
