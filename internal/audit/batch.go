package audit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mgpai22/subaudit/internal/stats"
	"github.com/mgpai22/subaudit/internal/subtitle"
)

// reported for files without a single parseable cue, which are left out
// of batch comparisons
var ErrNoCues = errors.New("no cues found")

// a file that could not be analyzed
type Failure struct {
	Path string
	Err  error
}

// FindSubtitleFiles lists the .srt files in dir in lexical order.
func FindSubtitleFiles(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if subtitle.IsSubtitleFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// AnalyzeFiles runs the pipeline over paths with at most concurrency files
// in flight. Reports keep the order of paths. Failed files and files with
// no cues are returned separately and do not stop the others.
func (p *Pipeline) AnalyzeFiles(
	ctx context.Context,
	paths []string,
	concurrency int,
) ([]stats.FileReport, []Failure, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	type result struct {
		report stats.FileReport
		err    error
	}

	var (
		results = make([]result, len(paths))
		wg      sync.WaitGroup
	)

	// semaphore to limit concurrency
	sem := make(chan struct{}, concurrency)

	for i, path := range paths {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, nil, ctx.Err()
		default:
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			rep, err := p.AnalyzeFile(ctx, path)
			if err == nil && rep.Report.Cues == 0 {
				err = ErrNoCues
			}
			results[i] = result{report: rep, err: err}
		}(i, path)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	reports := make([]stats.FileReport, 0, len(paths))
	var failures []Failure
	for i, r := range results {
		if r.err != nil {
			p.log().Warnw("Skipping file",
				"file", paths[i],
				"error", r.err,
			)
			failures = append(failures, Failure{Path: paths[i], Err: r.err})
			continue
		}
		reports = append(reports, r.report)
	}
	return reports, failures, nil
}
