package stats

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// DefaultTopN is the number of top results tracked when unset.
const DefaultTopN = 10

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Printf(format, args...)
	}
}

// depthOf returns the depth of path relative to root.
func depthOf(path, root string) int {
	rel := strings.TrimPrefix(path, root)

	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	if rel == "" {
		return 0
	}

	return strings.Count(rel, string(filepath.Separator)) + 1
}

// matchesAny returns the first pattern matching path, or nil.
func matchesAny(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is
// done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run walks the tree at opt.Root and returns aggregated statistics.
//
// Entries matching opt.Excludes or smaller than opt.MinSize are skipped, and
// traversal stops at opt.Depth when positive. Symbolic links are never
// followed. Unreadable entries are counted in ErrorCount rather than
// aborting the walk. The walk can be cancelled via ctx; progress updates are
// sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Stats, error) {
	log := logger{enabled: opt.Debug}

	if opt.Root == "" {
		opt.Root = "."
	}

	opt.Root = filepath.Clean(opt.Root)

	if info, err := os.Stat(opt.Root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Root)
	}

	if opt.TopN <= 0 {
		opt.TopN = DefaultTopN
	}

	excludes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, pattern := range opt.Excludes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	for _, re := range excludes {
		log.printf("[debug]: exclude regex: %s\n", re.String())
	}

	collector := newCollector(opt.TopN, opt.ByDir)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	walkErr := fastwalk.Walk(conf, opt.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			log.printf("[debug]: error accessing path %s: %v\n", path, err)

			collector.addError()

			return nil
		}

		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if opt.Depth > 0 && depthOf(path, opt.Root) > opt.Depth {
			if entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if re := matchesAny(path, excludes); re != nil {
			log.printf("[debug]: excluding %s (matched %s)\n", path, re.String())

			if entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			collector.addError()

			return nil
		}

		if info.Size() < opt.MinSize {
			return nil
		}

		rel, err := filepath.Rel(opt.Root, path)
		if err != nil {
			rel = path
		}

		if opt.ByDir {
			collector.add(rel, filepath.Dir(rel), info.Size())
		} else {
			collector.add(rel, filepath.Ext(path), info.Size())
		}

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	result := collector.finalize()

	result.Elapsed = time.Since(start)

	return result, nil
}
