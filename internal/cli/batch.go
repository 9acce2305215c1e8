package cli

import (
	"fmt"

	"github.com/mgpai22/subaudit/internal/audit"
	"github.com/mgpai22/subaudit/internal/report"
	"github.com/mgpai22/subaudit/internal/stats"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Compare every SRT file in a directory",
	Long: `Analyze all .srt files in a directory in parallel and print a per-file
table followed by comparative statistics: timing, reading speed, text
structure, overlaps, notable files and the encoding distribution.

Files that cannot be read are reported and skipped.

Examples:
  subaudit batch ./subs
  subaudit batch ./subs --recursive --concurrency 8
  subaudit batch ./subs -f yaml -o summary.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().
		IntP("concurrency", "c", 0, "Number of files analyzed in parallel (default from config)")
	batchCmd.Flags().
		BoolP("recursive", "r", false, "Include subdirectories")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx := cmd.Context()

	conf := currentConfig()
	log := currentLogger()

	opts, err := resolveOptions(cmd, conf)
	if err != nil {
		return err
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency < 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if concurrency == 0 {
		concurrency = conf.Batch.Concurrency
	}
	recursive, _ := cmd.Flags().GetBool("recursive")
	recursive = recursive || conf.Batch.Recursive

	files, err := audit.FindSubtitleFiles(dir, recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no SRT files found in %s", dir)
	}

	log.Infow("Analyzing directory",
		"dir", dir,
		"files", len(files),
		"concurrency", concurrency,
	)

	pipeline := &audit.Pipeline{
		Stats:    opts.stats,
		Encoding: opts.encoding,
		Logger:   log,
	}
	reports, failures, err := pipeline.AnalyzeFiles(ctx, files, concurrency)
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no valid subtitle files could be processed")
	}

	summary := stats.Summarize(reports)

	out, closeOut, err := openOutput(&opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	renderErr := report.NewRenderer(opts.render).RenderBatch(out, reports, summary)
	if err := closeOut(); err != nil && renderErr == nil {
		renderErr = fmt.Errorf("failed to close output file: %w", err)
	}
	if renderErr != nil {
		return renderErr
	}

	log.Infow("Batch complete",
		"analyzed", len(reports),
		"failed", len(failures),
	)
	return nil
}
