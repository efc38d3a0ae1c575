package convert

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gnana997/iconport/pkg/util"
)

// Summary aggregates a batch run.
type Summary struct {
	Attempted int
	Converted int
	Unchanged int
	Failed    int
	Fallbacks int
	Duration  time.Duration
	// Results are sorted by path.
	Results []Result
}

// Succeeded counts converted and unchanged files.
func (s *Summary) Succeeded() int {
	return s.Converted + s.Unchanged
}

// Failures returns the failed results in path order.
func (s *Summary) Failures() []Result {
	var failed []Result
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

func (s *Summary) String() string {
	return fmt.Sprintf("attempted %d, succeeded %d (%d converted, %d unchanged), failed %d, fallbacks %d",
		s.Attempted, s.Succeeded(), s.Converted, s.Unchanged, s.Failed, s.Fallbacks)
}

// Run discovers the sources in the input directory and converts them with a
// bounded worker pool. Only discovery errors abort the run; per-file
// failures are recorded in the summary. Cancelling ctx stops handing out
// files; files not started are not counted.
func (c *Converter) Run(ctx context.Context) (*Summary, error) {
	files, err := Discover(c.opts.InputDir, c.opts.Include, c.opts.Exclude)
	if err != nil {
		return nil, err
	}
	c.logger.Info("discovered icon sources", "dir", c.opts.InputDir, "files", len(files))

	return c.RunFiles(ctx, files)
}

// RunFiles converts files into the output directory and summarizes the
// results.
func (c *Converter) RunFiles(ctx context.Context, files []string) (*Summary, error) {
	start := time.Now()

	results := c.ConvertAll(ctx, files, c.opts.OutputDir)

	summary := &Summary{Results: results}
	for _, r := range results {
		summary.Attempted++
		summary.Fallbacks += len(r.Warnings)
		switch {
		case !r.OK():
			summary.Failed++
			c.logger.Error("conversion failed", "file", r.Path, "error", r.Err)
		case r.Unchanged:
			summary.Unchanged++
		default:
			summary.Converted++
		}
	}
	summary.Duration = time.Since(start)

	c.logger.Info("conversion finished",
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed,
		"fallbacks", summary.Fallbacks,
		"duration_ms", summary.Duration.Milliseconds())

	return summary, ctx.Err()
}

// ConvertAll converts files in parallel and returns their results sorted by
// path. Output does not depend on the number of workers.
func (c *Converter) ConvertAll(ctx context.Context, files []string, outputDir string) []Result {
	if len(files) == 0 {
		return nil
	}

	numWorkers := util.PoolSize(c.opts.Workers)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	paths := make(chan string, numWorkers*2)
	results := make(chan Result, numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				results <- c.ConvertFile(path, outputDir)
			}
		}()
	}

	go func() {
		defer func() {
			close(paths)
			wg.Wait()
			close(results)
		}()
		for _, f := range files {
			select {
			case paths <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	collected := make([]Result, 0, len(files))
	for r := range results {
		collected = append(collected, r)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].Path < collected[j].Path
	})
	return collected
}
