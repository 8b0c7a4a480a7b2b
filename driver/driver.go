// Package driver fans the external Clang-based analyzer out over every
// entry of a compile_commands.json compilation database, merging the
// per-translation-unit outputs the way spec.md §5 describes: independent
// process-level work, merged by set union over record tuples once every
// translation unit has finished. This is the out-of-scope collaborator
// named in spec.md §1 ("the build-graph driver that fans out over
// compile_commands.json"), reimplemented here at lighter weight than the
// classification core, grounded on the original tool's
// run_maki_on_compile_commands.py (a ThreadPoolExecutor(max_workers=12)
// over subprocess invocations).
package driver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/glog"
)

// DefaultJobs matches the original tool's ThreadPoolExecutor(max_workers=12).
const DefaultJobs = 12

// Options configures a fan-out run.
type Options struct {
	// AnalyzerPath is the external analyzer binary to invoke once per
	// compile command. It is expected to write analyzer records (§6's
	// JSON array shape) to stdout for the one translation unit it was
	// given.
	AnalyzerPath string
	SrcDir       string
	OutDir       string
	// Jobs bounds the worker pool; DefaultJobs is used when <= 0.
	Jobs int
	// Cache skips re-running the analyzer on a translation unit whose
	// cached output is newer than its source.
	Cache Cache
}

// Run invokes the analyzer once per compile command, bounded by
// Options.Jobs concurrent workers, and returns the path to each
// translation unit's output file. It stops launching new work once ctx
// is canceled or any worker returns an error, but lets in-flight workers
// finish.
func Run(ctx context.Context, opts Options, ccs []CompileCommand) ([]string, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = DefaultJobs
	}

	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var outputs []string
	var firstErr error

launch:
	for _, cc := range ccs {
		mu.Lock()
		failed := firstErr != nil
		mu.Unlock()
		if failed {
			break
		}
		select {
		case <-ctx.Done():
			break launch
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(cc CompileCommand) {
			defer wg.Done()
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				return
			default:
			}

			outPath, err := runOne(ctx, opts, cc)
			if err != nil {
				glog.Errorf("driver: %s: %v", cc.File, err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			outputs = append(outputs, outPath)
			mu.Unlock()
		}(cc)
	}

	wg.Wait()
	return outputs, firstErr
}

func runOne(ctx context.Context, opts Options, cc CompileCommand) (string, error) {
	rel, err := filepath.Rel(opts.SrcDir, cc.File)
	if err != nil {
		rel = filepath.Base(cc.File)
	}
	outPath := filepath.Join(opts.OutDir, rel)
	outPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".json"

	if opts.Cache.Fresh(outPath, cc.File) {
		glog.V(1).Infof("driver: cache hit for %s", cc.File)
		return outPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}

	args := append([]string{}, cc.Arguments...)
	args = append(args, "-fsyntax-only")

	cmd := exec.CommandContext(ctx, opts.AnalyzerPath, args...)
	cmd.Dir = cc.Directory

	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()
	cmd.Stdout = out

	var stderr strings.Builder
	cmd.Stderr = &stderr

	glog.V(2).Infof("driver: running analyzer on %s", cc.File)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("analyzer failed on %s: %w: %s", cc.File, err, stderr.String())
	}
	return outPath, nil
}
